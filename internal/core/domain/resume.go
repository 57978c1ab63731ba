package domain

import "time"

type ResumeStatus string

const (
	StatusProcessing ResumeStatus = "processing"
	StatusCompleted  ResumeStatus = "completed"
	StatusError      ResumeStatus = "error"
)

// IsTerminal reports whether a status can no longer change.
func (s ResumeStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

type FileFormat string

const (
	FormatPDF  FileFormat = "pdf"
	FormatText FileFormat = "txt"
	FormatDocx FileFormat = "docx"
)

func SupportedFormats() []FileFormat {
	return []FileFormat{FormatPDF, FormatText, FormatDocx}
}

// Resume is the per-document record held by the store. RawText is set once at
// creation and never mutated afterwards.
type Resume struct {
	ID        string       `json:"id"`
	FileName  string       `json:"fileName"`
	RawText   string       `json:"-"`
	Status    ResumeStatus `json:"status"`
	Profile   *Profile     `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"uploadDate"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear *int   `json:"graduationYear,omitempty"`
}

// SocialHandles is materialized only when at least one sub-field carries a
// non-blank value; otherwise the whole object stays nil on the profile.
type SocialHandles struct {
	LinkedIn  *string  `json:"linkedin"`
	GitHub    *string  `json:"github"`
	Twitter   *string  `json:"twitter"`
	Portfolio *string  `json:"portfolio"`
	Other     []string `json:"other"`
}

func (s *SocialHandles) Empty() bool {
	if s == nil {
		return true
	}
	return s.LinkedIn == nil && s.GitHub == nil && s.Twitter == nil && s.Portfolio == nil && len(s.Other) == 0
}

// Clone returns a deep copy; mutating the copy never touches the original.
func (s *SocialHandles) Clone() *SocialHandles {
	if s == nil {
		return nil
	}
	out := *s
	out.LinkedIn = cloneStringPtr(s.LinkedIn)
	out.GitHub = cloneStringPtr(s.GitHub)
	out.Twitter = cloneStringPtr(s.Twitter)
	out.Portfolio = cloneStringPtr(s.Portfolio)
	out.Other = append([]string(nil), s.Other...)
	return &out
}

// Profile is the normalized structured result of a completed parse. Optional
// contact fields are nil when absent, never empty strings.
type Profile struct {
	Name            string         `json:"name"`
	CurrentRole     string         `json:"currentRole"`
	ExperienceYears int            `json:"experienceYears"`
	Skills          []string       `json:"skills"`
	Education       []Education    `json:"education"`
	Summary         string         `json:"summary"`
	Email           *string        `json:"email"`
	Phone           *string        `json:"phone"`
	Location        *string        `json:"location"`
	SocialHandles   *SocialHandles `json:"socialHandles"`
}

// Clone returns a deep copy of the profile, pointer fields and slices
// included.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Skills = append([]string(nil), p.Skills...)
	out.Education = append([]Education(nil), p.Education...)
	for i := range out.Education {
		out.Education[i].GraduationYear = cloneIntPtr(out.Education[i].GraduationYear)
	}
	out.Email = cloneStringPtr(p.Email)
	out.Phone = cloneStringPtr(p.Phone)
	out.Location = cloneStringPtr(p.Location)
	out.SocialHandles = p.SocialHandles.Clone()
	return &out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ExtractedProfile is the raw inference output before normalization. Every
// scalar is a pointer so absence is distinguishable from a zero value.
type ExtractedProfile struct {
	Name            *string        `json:"name"`
	CurrentRole     *string        `json:"currentRole"`
	ExperienceYears *int           `json:"experienceYears"`
	Skills          []string       `json:"skills"`
	Education       []Education    `json:"education"`
	Summary         *string        `json:"summary"`
	Email           *string        `json:"email"`
	Phone           *string        `json:"phone"`
	Location        *string        `json:"location"`
	SocialHandles   *SocialHandles `json:"socialHandles"`
}

// ExtractionResult carries best-effort extracted text together with
// unit-level warnings (a skipped page, a malformed table) that did not stop
// the extraction as a whole.
type ExtractionResult struct {
	Text     string
	Warnings []string
}
