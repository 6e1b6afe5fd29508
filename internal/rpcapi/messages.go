package rpcapi

import "github.com/dmitrijs2005/recipex/internal/server/vitals"

// Envelope is returned by every method, alone or inside a richer response.
// Code uses HTTP-style strings such as "201 Created"; Payload carries the id
// of a created entity.
type Envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Payload string `json:"payload,omitempty"`
}

// Void is the empty request.
type Void struct{}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Birth    string `json:"birth"`
	Sex      string `json:"sex,omitempty"`
	City     string `json:"city,omitempty"`
	Address  string `json:"address,omitempty"`
	Field    string `json:"field,omitempty"`
	YearsExp *int64 `json:"years_exp,omitempty"`
}

// UpdateUserRequest overwrites the fields that are set.
type UpdateUserRequest struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name,omitempty"`
	Surname  *string `json:"surname,omitempty"`
	Birth    *string `json:"birth,omitempty"`
	Sex      *string `json:"sex,omitempty"`
	City     *string `json:"city,omitempty"`
	Address  *string `json:"address,omitempty"`
	Field    *string `json:"field,omitempty"`
	YearsExp *int64  `json:"years_exp,omitempty"`
}

type UserIDRequest struct {
	ID int64 `json:"id"`
}

type UserInfo struct {
	ID            int64    `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Surname       string   `json:"surname"`
	Birth         string   `json:"birth"`
	Sex           string   `json:"sex,omitempty"`
	City          string   `json:"city,omitempty"`
	Address       string   `json:"address,omitempty"`
	Field         string   `json:"field,omitempty"`
	YearsExp      *int64   `json:"years_exp,omitempty"`
	PCPhysician   *int64   `json:"pc_physician,omitempty"`
	VisitingNurse *int64   `json:"visiting_nurse,omitempty"`
	Relatives     []int64  `json:"relatives"`
	Caregivers    []int64  `json:"caregivers"`
	Patients      []int64  `json:"patients"`
	Response      Envelope `json:"response"`
}

// RelationsRequest edits one relation set of user ID.
type RelationsRequest struct {
	ID    int64   `json:"id"`
	ToAdd []int64 `json:"to_add,omitempty"`
	ToDel []int64 `json:"to_del,omitempty"`
}

type FirstAidRequest struct {
	ID            int64  `json:"id"`
	PCPhysician   *int64 `json:"pc_physician,omitempty"`
	VisitingNurse *int64 `json:"visiting_nurse,omitempty"`
}

// AddMeasurementRequest carries the kind's fields inline, e.g.
// {"kind":"BP","systolic":120,"diastolic":80}.
type AddMeasurementRequest struct {
	UserID   int64  `json:"user_id"`
	DateTime string `json:"date_time"`
	Kind     string `json:"kind"`
	vitals.Values
}

type UpdateMeasurementRequest struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	DateTime string `json:"date_time"`
	Kind     string `json:"kind"`
	vitals.Values
}

type MeasurementIDRequest struct {
	UserID int64 `json:"user_id"`
	ID     int64 `json:"id"`
}

type MeasurementInfo struct {
	ID       int64     `json:"id"`
	DateTime string    `json:"date_time"`
	Kind     string    `json:"kind"`
	Response *Envelope `json:"response,omitempty"`
	vitals.Values
}

type UserMeasurements struct {
	Measurements []MeasurementInfo `json:"measurements"`
	Response     Envelope          `json:"response"`
}

type ExportInfo struct {
	Key      string   `json:"key"`
	URL      string   `json:"url"`
	Response Envelope `json:"response"`
}

type SendMessageRequest struct {
	Sender      int64  `json:"sender"`
	Receiver    int64  `json:"receiver"`
	Message     string `json:"message"`
	Measurement *int64 `json:"measurement,omitempty"`
}

type MessageIDRequest struct {
	UserID int64 `json:"user_id"`
	ID     int64 `json:"id"`
}

type MessageInfo struct {
	ID          int64     `json:"id"`
	Sender      int64     `json:"sender"`
	Receiver    int64     `json:"receiver"`
	HasRead     bool      `json:"hasRead"`
	Message     string    `json:"message"`
	Measurement *int64    `json:"measurement,omitempty"`
	Response    *Envelope `json:"response,omitempty"`
}

type UserMessages struct {
	UserMessages []MessageInfo `json:"user_messages"`
	Response     Envelope      `json:"response"`
}
