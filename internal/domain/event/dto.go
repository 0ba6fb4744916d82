package event

import (
	"net/url"
	"strings"

	"github.com/staffsight/attendance-insights-go/internal/pkg/validator"
)

// Filter narrows an event listing. All fields are optional; an empty
// filter selects everything the organization can see.
type Filter struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *Status `json:"status,omitempty"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" {
		start, okStart := validator.IsValidDate(*f.StartDate)
		end, okEnd := validator.IsValidDate(*f.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues(), ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QueryValues encodes the filter as upstream query parameters.
func (f Filter) QueryValues() url.Values {
	q := url.Values{}
	if f.UserID != nil && *f.UserID != "" {
		q.Set("user_id", *f.UserID)
	}
	if f.StartDate != nil && *f.StartDate != "" {
		q.Set("start_date", *f.StartDate)
	}
	if f.EndDate != nil && *f.EndDate != "" {
		q.Set("end_date", *f.EndDate)
	}
	if f.Status != nil && *f.Status != "" {
		q.Set("status", string(*f.Status))
	}
	return q
}

// FilterFromQuery builds a Filter from request query parameters.
func FilterFromQuery(q url.Values) Filter {
	var f Filter
	if v := q.Get("user_id"); v != "" {
		f.UserID = &v
	}
	if v := q.Get("start_date"); v != "" {
		f.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		f.EndDate = &v
	}
	if v := q.Get("status"); v != "" {
		s := Status(v)
		f.Status = &s
	}
	return f
}
