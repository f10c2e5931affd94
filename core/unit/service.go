package unit

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type (
	Repository interface {
		LoadUnits(ctx context.Context) ([]Unit, error)
		SaveUnits(ctx context.Context, units []Unit) error
		LoadWatched(ctx context.Context, username string) ([]int64, error)
		SaveWatched(ctx context.Context, username string, watched []int64) error
	}

	Options struct {
		MaxVideos  int
		VideoHosts []string
	}

	Service struct {
		repo Repository
		opts Options
	}
)

func NewService(repo Repository, opts Options) *Service {
	return &Service{repo: repo, opts: opts}
}

func (svc *Service) List(ctx context.Context) ([]Unit, error) {
	return svc.repo.LoadUnits(ctx)
}

func (svc *Service) CreateUnit(ctx context.Context, nu NewUnit) (Unit, error) {
	if err := nu.Validate(svc.opts.MaxVideos); err != nil {
		return Unit{}, err
	}
	units, err := svc.repo.LoadUnits(ctx)
	if err != nil {
		return Unit{}, err
	}
	u := Unit{ID: core.NewID(), Name: nu.Name, TotalVideos: nu.TotalVideos, Videos: []Video{}}
	if err := svc.repo.SaveUnits(ctx, append(units, u)); err != nil {
		return Unit{}, errors.Wrap(err, "saving units")
	}
	return u, nil
}

// DeleteUnit removes a unit with all its videos and returns it. Watched sets are left as they are.
func (svc *Service) DeleteUnit(ctx context.Context, unitID int64) (Unit, error) {
	units, err := svc.repo.LoadUnits(ctx)
	if err != nil {
		return Unit{}, err
	}
	for i, u := range units {
		if u.ID == unitID {
			kept := append(units[:i:i], units[i+1:]...)
			if err := svc.repo.SaveUnits(ctx, kept); err != nil {
				return Unit{}, errors.Wrap(err, "saving units")
			}
			return u, nil
		}
	}
	return Unit{}, core.ErrNotFound
}

// AddVideo appends a video to a unit that still has room.
func (svc *Service) AddVideo(ctx context.Context, unitID int64, nv NewVideo) (Video, error) {
	units, err := svc.repo.LoadUnits(ctx)
	if err != nil {
		return Video{}, err
	}
	idx := indexOf(units, unitID)
	if idx < 0 {
		return Video{}, core.ErrNotFound
	}
	if units[idx].Full() {
		return Video{}, core.ErrCapacityExceeded
	}
	if err := nv.Validate(); err != nil {
		return Video{}, err
	}

	v := Video{ID: core.NewID(), Title: nv.Title}
	if nv.File != "" {
		v.Src = nv.File
		v.IsFile = true
	} else if svc.isVideoLink(nv.Link) {
		v.Src = nv.Link
	} else {
		return Video{}, core.ErrInvalidLink
	}

	updated := make([]Unit, len(units))
	copy(updated, units)
	u := updated[idx]
	u.Videos = append(u.Videos[:len(u.Videos):len(u.Videos)], v)
	updated[idx] = u

	if err := svc.repo.SaveUnits(ctx, updated); err != nil {
		return Video{}, errors.Wrap(err, "saving units")
	}
	return v, nil
}

// RemoveVideo drops a video from a unit and returns it.
func (svc *Service) RemoveVideo(ctx context.Context, unitID, videoID int64) (Video, error) {
	units, err := svc.repo.LoadUnits(ctx)
	if err != nil {
		return Video{}, err
	}
	idx := indexOf(units, unitID)
	if idx < 0 {
		return Video{}, core.ErrNotFound
	}
	videos := units[idx].Videos
	for i, v := range videos {
		if v.ID == videoID {
			units[idx].Videos = append(videos[:i:i], videos[i+1:]...)
			if err := svc.repo.SaveUnits(ctx, units); err != nil {
				return Video{}, errors.Wrap(err, "saving units")
			}
			return v, nil
		}
	}
	return Video{}, core.ErrNotFound
}

// MarkWatched adds a video to the student's watched set. It is a no-op for teachers
// and for videos already watched.
func (svc *Service) MarkWatched(ctx context.Context, id user.Identity, videoID int64) ([]int64, error) {
	if !id.IsStudent() {
		return nil, nil
	}
	watched, err := svc.repo.LoadWatched(ctx, id.Username)
	if err != nil {
		return nil, err
	}
	for _, w := range watched {
		if w == videoID {
			return watched, nil
		}
	}
	watched = append(watched, videoID)
	if err := svc.repo.SaveWatched(ctx, id.Username, watched); err != nil {
		return nil, errors.Wrap(err, "saving watched videos")
	}
	return watched, nil
}

// Overview lists the units with the viewer's progress on each of them.
func (svc *Service) Overview(ctx context.Context, id user.Identity) (Overview, error) {
	units, err := svc.repo.LoadUnits(ctx)
	if err != nil {
		return Overview{}, err
	}
	watched, err := svc.repo.LoadWatched(ctx, id.Username)
	if err != nil {
		return Overview{}, err
	}
	ov := Overview{Units: make([]UnitProgress, 0, len(units)), Watched: watched}
	for _, u := range units {
		ov.Units = append(ov.Units, UnitProgress{Unit: u, Progress: Progress(u, watched)})
	}
	return ov, nil
}

func (svc *Service) isVideoLink(link string) bool {
	if link == "" {
		return false
	}
	for _, host := range svc.opts.VideoHosts {
		if strings.Contains(link, host) {
			return true
		}
	}
	return false
}

func indexOf(units []Unit, unitID int64) int {
	for i, u := range units {
		if u.ID == unitID {
			return i
		}
	}
	return -1
}
