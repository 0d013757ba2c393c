package systems

import "github.com/automoto/doomerang-tracer/tracer"

// LabelDirectory is a tracer.LabelProvider backed by labels published per user id.
type LabelDirectory struct {
	labels map[string]string
}

var _ tracer.LabelProvider = (*LabelDirectory)(nil)

func NewLabelDirectory() *LabelDirectory {
	return &LabelDirectory{labels: make(map[string]string)}
}

// Set records label for userID; an empty label removes the entry.
func (d *LabelDirectory) Set(userID, label string) {
	if label == "" {
		delete(d.labels, userID)
		return
	}
	d.labels[userID] = label
}

func (d *LabelDirectory) Remove(userID string) { delete(d.labels, userID) }
func (d *LabelDirectory) Clear()               { clear(d.labels) }

func (d *LabelDirectory) Label(id tracer.Identity) string {
	return d.labels[id.UserID]
}
