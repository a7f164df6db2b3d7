package model

import "time"

// Scholarship represents a scholarship offering as stored in the
// `scholarships` table.  Each field corresponds to a column in the
// database.  Degrees holds a comma separated list (e.g. "S1,S2")
// because offerings frequently span several degree levels.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – name of the scholarship program.
//	University  – university offering the scholarship.
//	Description – free text description shown to students.
//	Country     – country of the university.
//	City        – city of the university.
//	Major       – field of study the scholarship targets.
//	Email       – contact email of the scholarship provider.
//	Degrees     – degree levels covered (comma separated).
//	FundingType – "fully_funded" or "partially_funded".
//	OpenDate    – date applications open.
//	CloseDate   – date applications close.
//	CreatedAt   – timestamp of creation.
//	UpdatedAt   – timestamp of last update.
type Scholarship struct {
	ID          uint64    `json:"id"`           // scholarships.id
	Name        string    `json:"name"`         // scholarships.name
	University  string    `json:"university"`   // scholarships.university
	Description string    `json:"description"`  // scholarships.description
	Country     string    `json:"country"`      // scholarships.country
	City        string    `json:"city"`         // scholarships.city
	Major       string    `json:"major"`        // scholarships.major
	Email       string    `json:"email"`        // scholarships.email
	Degrees     string    `json:"degrees"`      // scholarships.degrees
	FundingType string    `json:"funding_type"` // scholarships.funding_type
	OpenDate    string    `json:"open_date"`    // scholarships.open_date (YYYY-MM-DD)
	CloseDate   string    `json:"close_date"`   // scholarships.close_date (YYYY-MM-DD)
	CreatedAt   time.Time `json:"created_at"`   // scholarships.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // scholarships.updated_at
}

// ScholarshipFilter narrows the candidate set returned by the repository.
// Empty fields are ignored, so a zero filter matches every scholarship.
type ScholarshipFilter struct {
	Country     string `json:"country"`
	Major       string `json:"major"`
	Degrees     string `json:"degrees"`
	FundingType string `json:"funding_type"`
}

// UserProfile holds the academic and funding attributes of a student as
// stored in the `user_profiles` table.  A profile is looked up by email
// during matching and is treated as immutable for the duration of a
// single matching request.
//
// Fields:
//
//	ID          – primary key identifier.
//	Email       – email the profile is keyed by.
//	Education   – latest education background (e.g. "SMA", "S1 Informatika").
//	Major       – intended field of study.
//	FundingNeed – "fully_funded" or "partially_funded".
//	Preference  – free text preference (target country, study mode, ...).
type UserProfile struct {
	ID          uint64    `json:"id"`           // user_profiles.id
	Email       string    `json:"email"`        // user_profiles.email
	Education   string    `json:"education"`    // user_profiles.education
	Major       string    `json:"major"`        // user_profiles.major
	FundingNeed string    `json:"funding_need"` // user_profiles.funding_need
	Preference  string    `json:"preference"`   // user_profiles.preference
	CreatedAt   time.Time `json:"created_at"`   // user_profiles.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // user_profiles.updated_at
}
