// Package models defines the persisted entities, their create/update inputs,
// and the redacted views returned to callers.
package models

import (
	"time"

	"github.com/msoler84/userhub/internal/nullable"
)

// User is the full user record as stored. It is internal to the store layer;
// everything returned to callers goes through UserView or UserSummary.
type User struct {
	ID               int64
	FirstName        *string
	SecondName       *string
	IDNumber         *string
	Email            *string
	Address          *string
	PhoneNumber      *string
	HashedPassword   *string
	IsActive         bool
	IsSuperuser      bool
	UserTypeID       *int64
	VerificationLink *string
	AddedOn          time.Time
	AddedBy          string
	ChangedOn        *time.Time
	ChangedBy        *string

	// UserType is populated only when the relation was prefetched.
	UserType *UserType
}

// UserCreate carries the fields accepted on user creation. Password is the
// plaintext credential; the store hashes it before anything touches storage.
// HashedPassword may be supplied instead when seeding pre-hashed accounts.
type UserCreate struct {
	FirstName        *string   `json:"first_name,omitempty"`
	SecondName       *string   `json:"second_name,omitempty"`
	IDNumber         *string   `json:"id_number,omitempty"`
	Email            string    `json:"email"`
	Address          *string   `json:"adress,omitempty"`
	PhoneNumber      *string   `json:"phone_number,omitempty"`
	Password         string    `json:"password,omitempty"`
	HashedPassword   string    `json:"-"`
	IsSuperuser      bool      `json:"is_superuser,omitempty"`
	UserTypeID       *int64    `json:"user_type_id"`
	VerificationLink string    `json:"-"`
	AddedOn          time.Time `json:"added_on"`
	AddedBy          string    `json:"added_by"`
}

// UserUpdate carries a partial update: absent fields are untouched and
// explicit nulls clear the column.
type UserUpdate struct {
	FirstName      nullable.Field[string]    `json:"first_name"`
	SecondName     nullable.Field[string]    `json:"second_name"`
	IDNumber       nullable.Field[string]    `json:"id_number"`
	Email          nullable.Field[string]    `json:"email"`
	Address        nullable.Field[string]    `json:"adress"`
	PhoneNumber    nullable.Field[string]    `json:"phone_number"`
	HashedPassword nullable.Field[string]    `json:"-"`
	UserTypeID     nullable.Field[int64]     `json:"user_type_id"`
	IsActive       nullable.Field[bool]      `json:"is_active"`
	ChangedOn      nullable.Field[time.Time] `json:"changed_on"`
	ChangedBy      nullable.Field[string]    `json:"changed_by"`
}

// UserView is the redacted user representation: no password hash, and the
// nested user type stripped of audit metadata.
type UserView struct {
	ID          int64         `json:"id"`
	FirstName   *string       `json:"first_name"`
	SecondName  *string       `json:"second_name"`
	IDNumber    *string       `json:"id_number"`
	Email       *string       `json:"email"`
	Address     *string       `json:"adress"`
	PhoneNumber *string       `json:"phone_number"`
	IsActive    bool          `json:"is_active"`
	IsSuperuser bool          `json:"is_superuser"`
	UserTypeID  *int64        `json:"user_type_id"`
	AddedOn     time.Time     `json:"added_on"`
	AddedBy     string        `json:"added_by"`
	ChangedOn   *time.Time    `json:"changed_on"`
	ChangedBy   *string       `json:"changed_by"`
	UserType    *UserTypeView `json:"user_type,omitempty"`
}

// UserSummary is the only shape echoed back immediately after signup.
type UserSummary struct {
	ID         int64   `json:"id"`
	Email      *string `json:"email"`
	UserTypeID *int64  `json:"user_type_id"`
}

// NewUserView redacts a stored User for external consumption.
func NewUserView(u *User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:          u.ID,
		FirstName:   u.FirstName,
		SecondName:  u.SecondName,
		IDNumber:    u.IDNumber,
		Email:       u.Email,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		UserTypeID:  u.UserTypeID,
		AddedOn:     u.AddedOn,
		AddedBy:     u.AddedBy,
		ChangedOn:   u.ChangedOn,
		ChangedBy:   u.ChangedBy,
		UserType:    NewUserTypeView(u.UserType),
	}
}

// NewUserSummary projects a created User down to the fields considered safe
// to return right after signup.
func NewUserSummary(u *User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Email: u.Email, UserTypeID: u.UserTypeID}
}
