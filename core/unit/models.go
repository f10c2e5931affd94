package unit

import (
	"math"

	"github.com/trezcool/darasa/core"
)

// Unit is a named group of recorded videos holding at most TotalVideos of them.
type Unit struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	TotalVideos int     `json:"totalVideos"`
	Videos      []Video `json:"videos"`
}

func (u Unit) Full() bool {
	return len(u.Videos) >= u.TotalVideos
}

// Video points either at an external link or (IsFile) at an uploaded media handle.
type Video struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Src    string `json:"src"`
	IsFile bool   `json:"isFile"`
}

// Progress returns the rounded percentage of the unit's capacity the watched set covers.
func Progress(u Unit, watched []int64) int {
	if u.TotalVideos <= 0 {
		return 0
	}
	seen := make(map[int64]bool, len(watched))
	for _, id := range watched {
		seen[id] = true
	}
	var n int
	for _, v := range u.Videos {
		if seen[v.ID] {
			n++
		}
	}
	return int(math.Floor(float64(n)*100/float64(u.TotalVideos) + 0.5))
}

// UnitProgress is a Unit decorated with the viewer's progress.
type UnitProgress struct {
	Unit
	Progress int `json:"progress"`
}

type Overview struct {
	Units   []UnitProgress `json:"units"`
	Watched []int64        `json:"watched"`
}

type NewUnit struct {
	Name        string `json:"name" validate:"notblank"`
	TotalVideos int    `json:"totalVideos" validate:"required,min=1"`
}

func (nu *NewUnit) Validate(maxVideos int) error {
	nu.Name = core.CleanString(nu.Name)
	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	if maxVideos > 0 && nu.TotalVideos > maxVideos {
		return core.NewValidationError(nil, core.FieldError{
			Field: "totalVideos",
			Error: "a unit cannot hold that many videos",
		})
	}
	return nil
}

// NewVideo holds either a Link or the media handle of an uploaded File.
type NewVideo struct {
	Title string `json:"title" validate:"notblank"`
	Link  string `json:"link"`
	File  string `json:"-"`
}

func (nv *NewVideo) Validate() error {
	nv.Title = core.CleanString(nv.Title)
	nv.Link = core.CleanString(nv.Link)
	return core.Validate.Struct(nv)
}
