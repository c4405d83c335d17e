package model

// ContentSchemaVersion tags stored snapshots so older shapes can be
// migrated or reinterpreted when read back.
const ContentSchemaVersion = 1

// PersonalInfo holds the contact block of a resume.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// Experience is one work-history entry.
type Experience struct {
	ID        string   `json:"id"`
	Company   string   `json:"company"`
	Position  string   `json:"position"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Current   bool     `json:"current,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

// Education is one education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Skills groups skill names by category.
type Skills struct {
	Technical []string `json:"technical,omitempty"`
	Soft      []string `json:"soft,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

// Project is one project entry.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Certification is one certification entry.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// CustomItem is one row inside a custom section.
type CustomItem struct {
	ID      string `json:"id"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

// CustomSection is a user-defined section with free-form items.
type CustomSection struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Items []CustomItem `json:"items,omitempty"`
}

// Content is the editable body of a resume. It is stored as JSONB on the
// resume row and copied verbatim into version snapshots.
type Content struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         Skills          `json:"skills"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	CustomSections []CustomSection `json:"customSections,omitempty"`
}

// Clone returns a deep copy. Snapshots and undo history must never share
// slices with the live document.
func (c Content) Clone() Content {
	out := c
	if c.Experience != nil {
		out.Experience = make([]Experience, len(c.Experience))
		for i, e := range c.Experience {
			e.Bullets = cloneStrings(e.Bullets)
			out.Experience[i] = e
		}
	}
	out.Education = cloneSlice(c.Education)
	out.Skills = Skills{
		Technical: cloneStrings(c.Skills.Technical),
		Soft:      cloneStrings(c.Skills.Soft),
		Languages: cloneStrings(c.Skills.Languages),
		Tools:     cloneStrings(c.Skills.Tools),
	}
	if c.Projects != nil {
		out.Projects = make([]Project, len(c.Projects))
		for i, p := range c.Projects {
			p.Technologies = cloneStrings(p.Technologies)
			out.Projects[i] = p
		}
	}
	out.Certifications = cloneSlice(c.Certifications)
	if c.CustomSections != nil {
		out.CustomSections = make([]CustomSection, len(c.CustomSections))
		for i, s := range c.CustomSections {
			s.Items = cloneSlice(s.Items)
			out.CustomSections[i] = s
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append([]T(nil), in...)
}
