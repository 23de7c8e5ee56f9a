package domain

import (
	"sort"
	"time"
)

// ModelQuota is the usage of one model. Percentage is the share used, 0 to 100.
type ModelQuota struct {
	Name       string
	Percentage int
	ResetTime  time.Time
}

func (m ModelQuota) Remaining() int {
	return 100 - ClampPercentage(m.Percentage)
}

type Quota struct {
	Models      []ModelQuota
	IsForbidden bool
	LastUpdated time.Time
}

func (q Quota) Clone() Quota {
	if q.Models != nil {
		q.Models = append([]ModelQuota(nil), q.Models...)
	}
	return q
}

func (q Quota) IsStale(now time.Time, maxAge time.Duration) bool {
	if q.LastUpdated.IsZero() {
		return true
	}

	if maxAge <= 0 {
		return false
	}

	return now.Sub(q.LastUpdated) > maxAge
}

// MostUsed returns the model closest to exhaustion.
func (q Quota) MostUsed() (ModelQuota, bool) {
	if len(q.Models) == 0 {
		return ModelQuota{}, false
	}
	best := q.Models[0]
	for _, model := range q.Models[1:] {
		if model.Percentage > best.Percentage {
			best = model
		}
	}
	return best, true
}

func (q *Quota) SortModels() {
	sort.SliceStable(q.Models, func(i, j int) bool {
		return q.Models[i].Name < q.Models[j].Name
	})
}

func ClampPercentage(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
