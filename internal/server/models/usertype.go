package models

import (
	"time"

	"github.com/msoler84/userhub/internal/nullable"
)

// UserType is a categorical lookup entity referenced by users. It is
// administered independently; users hold a weak reference by foreign id.
type UserType struct {
	ID        int64
	Name      string
	AddedOn   time.Time
	AddedBy   string
	ChangedOn *time.Time
	ChangedBy *string
}

// UserTypeCreate carries the fields accepted when creating a user type.
type UserTypeCreate struct {
	Name    string    `json:"user_type_name"`
	AddedOn time.Time `json:"added_on"`
	AddedBy string    `json:"added_by"`
}

// UserTypeUpdate carries a partial update. Absent fields are untouched.
type UserTypeUpdate struct {
	Name      nullable.Field[string]    `json:"user_type_name"`
	ChangedOn nullable.Field[time.Time] `json:"changed_on"`
	ChangedBy nullable.Field[string]    `json:"changed_by"`
}

// UserTypeView is the redacted representation nested inside user responses:
// the caller should not see who last changed the lookup category.
type UserTypeView struct {
	ID   int64  `json:"id"`
	Name string `json:"user_type_name"`
}

// NewUserTypeView strips the audit metadata from a UserType.
func NewUserTypeView(ut *UserType) *UserTypeView {
	if ut == nil {
		return nil
	}
	return &UserTypeView{ID: ut.ID, Name: ut.Name}
}
