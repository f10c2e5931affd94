package grade_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/storage/kvrepos"
	"github.com/trezcool/darasa/tests"
)

func setup(t *testing.T) *grade.Service {
	svc, _ := setupWithBackend(t)
	return svc
}

func setupWithBackend(t *testing.T) (*grade.Service, core.KVStore) {
	store, backend, _ := testutil.NewStore(t)
	return grade.NewService(kvrepos.NewGradeRepository(store), testutil.NewRoster(t, store, "alice", "bob")), backend
}

func TestService_Submit(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	valid := grade.NewGrade{Student: "alice", Grade: 10, Date: "2024-03-01", Reason: "Test"}

	tests := []struct {
		name      string
		ng        func(g grade.NewGrade) grade.NewGrade
		wantField string
	}{
		{name: "valid", ng: func(g grade.NewGrade) grade.NewGrade { return g }},
		{name: "lowest", ng: func(g grade.NewGrade) grade.NewGrade { g.Grade = 1; return g }},
		{name: "highest", ng: func(g grade.NewGrade) grade.NewGrade { g.Grade = 12; return g }},
		{name: "zero", ng: func(g grade.NewGrade) grade.NewGrade { g.Grade = 0; return g }, wantField: "grade"},
		{name: "too high", ng: func(g grade.NewGrade) grade.NewGrade { g.Grade = 13; return g }, wantField: "grade"},
		{name: "no student", ng: func(g grade.NewGrade) grade.NewGrade { g.Student = ""; return g }, wantField: "student"},
		{name: "bad date", ng: func(g grade.NewGrade) grade.NewGrade { g.Date = "01/03/2024"; return g }, wantField: "date"},
		{name: "no reason", ng: func(g grade.NewGrade) grade.NewGrade { g.Reason = " "; return g }, wantField: "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.ng(valid))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.wantField, vErrs[0].Field())
		})
	}

	for _, student := range []string{"ghost", "teacher", "Alice"} {
		t.Run("unregistered student "+student, func(t *testing.T) {
			g := valid
			g.Student = student
			_, err := svc.Submit(ctx, g)
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, []core.FieldError{{Field: "student", Error: "unknown student"}}, vErr.Fields)
		})
	}
}

func TestService_VisibleTo(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	submit := func(student, date, reason string) grade.Grade {
		g, err := svc.Submit(ctx, grade.NewGrade{Student: student, Grade: 7, Date: date, Reason: reason})
		require.NoError(t, err)
		return g
	}
	submit("alice", "2024-03-01", "a1")
	submit("bob", "2024-03-05", "b1")
	submit("alice", "2024-03-10", "a2")
	submit("alice", "2024-03-01", "a3")

	reasons := func(gs []grade.Grade) []string {
		out := make([]string, 0, len(gs))
		for _, g := range gs {
			out = append(out, g.Reason)
		}
		return out
	}

	got, err := svc.VisibleTo(ctx, testutil.Student("alice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a1", "a3"}, reasons(got))

	got, err = svc.VisibleTo(ctx, testutil.Student("bob"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, reasons(got))

	got, err = svc.VisibleTo(ctx, testutil.Teacher())
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "b1", "a1", "a3"}, reasons(got))
}

func TestService_Delete(t *testing.T) {
	svc, backend := setupWithBackend(t)
	ctx := context.Background()

	var submitted []grade.Grade
	for _, ng := range []grade.NewGrade{
		{Student: "alice", Grade: 10, Date: "2024-03-01", Reason: "Test"},
		{Student: "bob", Grade: 7, Date: "2024-03-02", Reason: "Quiz"},
		{Student: "alice", Grade: 12, Date: "2024-03-03", Reason: "Exam"},
	} {
		g, err := svc.Submit(ctx, ng)
		require.NoError(t, err)
		submitted = append(submitted, g)
	}
	first, middle, last := submitted[0], submitted[1], submitted[2]

	raw, err := backend.Get(ctx, core.KeyGrades)
	require.NoError(t, err)
	var before []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &before))
	require.Len(t, before, 3)

	require.NoError(t, svc.Delete(ctx, middle.ID))

	got, err := svc.VisibleTo(ctx, testutil.Teacher())
	require.NoError(t, err)
	assert.ElementsMatch(t, []grade.Grade{first, last}, got)

	raw, err = backend.Get(ctx, core.KeyGrades)
	require.NoError(t, err)
	var after []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &after))
	assert.Equal(t, []json.RawMessage{before[0], before[2]}, after)

	assert.Equal(t, core.ErrNotFound, svc.Delete(ctx, middle.ID))
}
