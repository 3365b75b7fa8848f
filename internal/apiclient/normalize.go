package apiclient

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/voxxy-presents/presents-api/internal/model"
)

// NormalizeRegistrations converts any of the list response shapes the API has
// been observed to return into a flat slice:
//
//	[...]                          bare array
//	{"data": [...]}                data envelope
//	{"registrations": [...]}       named array
//	{"registrations": {"id": {}}}  keyed map of documents
//
// Callers always get a non-nil slice. The shape ambiguity stops here; nothing
// downstream should ever re-guess it.
func NormalizeRegistrations(raw json.RawMessage) ([]model.Registration, error) {
	var direct []model.Registration
	if err := json.Unmarshal(raw, &direct); err == nil {
		if direct == nil {
			direct = []model.Registration{}
		}
		return direct, nil
	}

	var envelope struct {
		Data          []model.Registration `json:"data"`
		Registrations json.RawMessage      `json:"registrations"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unrecognized registration list shape: %w", err)
	}

	if envelope.Data != nil {
		return envelope.Data, nil
	}
	if envelope.Registrations == nil {
		return nil, fmt.Errorf("registration list missing from response")
	}

	var named []model.Registration
	if err := json.Unmarshal(envelope.Registrations, &named); err == nil {
		return named, nil
	}

	var keyed map[string]model.Registration
	if err := json.Unmarshal(envelope.Registrations, &keyed); err != nil {
		return nil, fmt.Errorf("unrecognized registrations field shape: %w", err)
	}
	regs := make([]model.Registration, 0, len(keyed))
	for id, reg := range keyed {
		if reg.ID == "" {
			reg.ID = id
		}
		regs = append(regs, reg)
	}
	// Map iteration order is random; creation order is the closest thing to
	// the fetch order the other shapes provide.
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].ID < regs[j].ID
		}
		return regs[i].CreatedAt.Before(regs[j].CreatedAt)
	})
	return regs, nil
}
