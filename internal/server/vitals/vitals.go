// Package vitals validates clinical measurement payloads.
//
// Each measurement kind owns exactly one group of fields. On create every
// field of the group is required and all other fields are discarded; on
// update fields are optional and only present ones are range-checked and
// applied. Ranges are inclusive.
package vitals

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/recipex/internal/common"
)

// Kind tags a measurement.
type Kind string

const (
	BloodPressure   Kind = "BP"
	HeartRate       Kind = "HR"
	RespiratoryRate Kind = "RR"
	OxygenSat       Kind = "SpO2"
	Glucose         Kind = "HGT"
	Temperature     Kind = "TMP"
	Pain            Kind = "PAIN"
	Cholesterol     Kind = "CHL"
)

// Kinds lists every recognised kind in display order.
var Kinds = []Kind{BloodPressure, HeartRate, RespiratoryRate, OxygenSat, Glucose, Temperature, Pain, Cholesterol}

// Values is the union of all kind-specific fields. Nil means absent.
type Values struct {
	Systolic     *int64   `json:"systolic,omitempty"`
	Diastolic    *int64   `json:"diastolic,omitempty"`
	BPM          *int64   `json:"bpm,omitempty"`
	Respirations *int64   `json:"respirations,omitempty"`
	SpO2         *float64 `json:"spo2,omitempty"`
	HGT          *float64 `json:"hgt,omitempty"`
	Degrees      *float64 `json:"degrees,omitempty"`
	NRS          *int64   `json:"nrs,omitempty"`
	CHLLevel     *int64   `json:"chl_level,omitempty"`
}

type rule struct {
	name     string
	min, max float64
	value    func(v *Values) (float64, bool)
	copy     func(dst, src *Values)
}

func intRule(name string, min, max float64, f func(v *Values) **int64) rule {
	return rule{
		name: name, min: min, max: max,
		value: func(v *Values) (float64, bool) {
			p := *f(v)
			if p == nil {
				return 0, false
			}
			return float64(*p), true
		},
		copy: func(dst, src *Values) {
			if p := *f(src); p != nil {
				n := *p
				*f(dst) = &n
			}
		},
	}
}

func floatRule(name string, min, max float64, f func(v *Values) **float64) rule {
	return rule{
		name: name, min: min, max: max,
		value: func(v *Values) (float64, bool) {
			p := *f(v)
			if p == nil {
				return 0, false
			}
			return *p, true
		},
		copy: func(dst, src *Values) {
			if p := *f(src); p != nil {
				n := *p
				*f(dst) = &n
			}
		},
	}
}

var rules = map[Kind][]rule{
	BloodPressure: {
		intRule("systolic", 0, 250, func(v *Values) **int64 { return &v.Systolic }),
		intRule("diastolic", 0, 250, func(v *Values) **int64 { return &v.Diastolic }),
	},
	HeartRate:       {intRule("bpm", 0, 400, func(v *Values) **int64 { return &v.BPM })},
	RespiratoryRate: {intRule("respirations", 0, 200, func(v *Values) **int64 { return &v.Respirations })},
	OxygenSat:       {floatRule("spo2", 0, 100, func(v *Values) **float64 { return &v.SpO2 })},
	Glucose:         {floatRule("hgt", 0, 600, func(v *Values) **float64 { return &v.HGT })},
	Temperature:     {floatRule("degrees", 30, 45, func(v *Values) **float64 { return &v.Degrees })},
	Pain:            {intRule("nrs", 0, 10, func(v *Values) **int64 { return &v.NRS })},
	Cholesterol:     {intRule("chl_level", 0, 800, func(v *Values) **int64 { return &v.CHLLevel })},
}

// ParseKind accepts one of the eight kind tags, case-sensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := rules[k]; !ok {
		return "", fmt.Errorf("%w: %q", common.ErrorInvalidKind, s)
	}
	return k, nil
}

// FieldNames returns the names of the fields relevant to kind.
func FieldNames(kind Kind) []string {
	rs := rules[kind]
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.name)
	}
	return out
}

// ValidateNew checks a payload for a new measurement and returns a copy that
// holds only the fields of kind's group.
func ValidateNew(kind Kind, in Values) (Values, error) {
	rs, ok := rules[kind]
	if !ok {
		return Values{}, fmt.Errorf("%w: %q", common.ErrorInvalidKind, kind)
	}

	var out Values
	for _, r := range rs {
		v, present := r.value(&in)
		if !present {
			return Values{}, fmt.Errorf("%w: %s", common.ErrorMissingField, r.name)
		}
		if err := r.check(v); err != nil {
			return Values{}, err
		}
		r.copy(&out, &in)
	}
	return out, nil
}

// ApplyUpdate range-checks the fields of kind's group present in patch and
// returns stored with them overwritten. Absent fields keep their stored value;
// fields from other groups are ignored.
func ApplyUpdate(kind Kind, stored, patch Values) (Values, error) {
	rs, ok := rules[kind]
	if !ok {
		return Values{}, fmt.Errorf("%w: %q", common.ErrorInvalidKind, kind)
	}

	out := stored.clone()
	for _, r := range rs {
		v, present := r.value(&patch)
		if !present {
			continue
		}
		if err := r.check(v); err != nil {
			return Values{}, err
		}
		r.copy(&out, &patch)
	}
	return out, nil
}

func (r rule) check(v float64) error {
	if math.IsNaN(v) || v < r.min || v > r.max {
		return fmt.Errorf("%w: %s must be within [%g, %g]", common.ErrorOutOfRange, r.name, r.min, r.max)
	}
	return nil
}

func (v Values) clone() Values {
	var out Values
	for _, rs := range rules {
		for _, r := range rs {
			r.copy(&out, &v)
		}
	}
	return out
}

// ParseTimestamp parses a "YYYY-MM-DD HH:MM:SS" date-time.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(common.DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrorBadTimestamp, s)
	}
	return t, nil
}

// FormatTimestamp is the inverse of ParseTimestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(common.DateTimeLayout)
}
