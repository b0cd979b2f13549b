// Package content holds the static profile shown on the portfolio.
package content

type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Education struct {
	School         string   `json:"school"`
	Degree         string   `json:"degree"`
	Field          string   `json:"field"`
	GraduationYear string   `json:"graduationYear"`
	StartDate      string   `json:"startDate,omitempty"`
	EndDate        string   `json:"endDate,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	Description    string   `json:"description,omitempty"`
	Achievements   []string `json:"achievements,omitempty"`
}

type Certification struct {
	Title            string `json:"title"`
	Issuer           string `json:"issuer"`
	VerificationLink string `json:"verificationLink"`
	IssuedDate       string `json:"issuedDate"`
}

type Interest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Profile struct {
	FullName       string          `json:"fullName"`
	AboutMe        string          `json:"aboutMe"`
	GitHubURL      string          `json:"githubUrl"`
	LinkedInURL    string          `json:"linkedinUrl"`
	Skills         []Skill         `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Interests      []Interest      `json:"interests"`
}

var (
	AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.`

	Default = Profile{
		FullName:    "Zach Kordas-Potter",
		AboutMe:     AboutMe,
		GitHubURL:   "https://github.com/Zachkp",
		LinkedInURL: "https://www.linkedin.com/in/zachkp/",
		Skills: []Skill{
			{"Go", "Programming & Frameworks"},
			{"Python", "Programming & Frameworks"},
			{"TypeScript", "Programming & Frameworks"},
			{"Gin", "Programming & Frameworks"},
			{"HTMX", "Visualization & Frontend"},
			{"Tailwind", "Visualization & Frontend"},
			{"SQLite", "Data Engineering"},
			{"PostgreSQL", "Data Engineering"},
			{"Docker", "Cloud Computing & MLOps"},
			{"TF-IDF", "Machine Learning & AI"},
			{"Problem-Solving", "Soft Skills & Collaboration"},
		},
		Experience: []Experience{
			{
				Title:       "Presentation Expert",
				Company:     "Target",
				StartDate:   "2023-08",
				EndDate:     "Present",
				Description: "Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities.",
			},
			{
				Title:       "Manager",
				Company:     "Jasons Catered Events",
				StartDate:   "2016-08",
				EndDate:     "Present",
				Description: "Coordinated customized menus, supported event AV equipment and managed digital order tracking.",
			},
		},
		Education: []Education{
			{
				School:         "Western Governors University",
				Degree:         "Bachelor of Science",
				Field:          "Computer Science",
				GraduationYear: "2023",
				StartDate:      "2019-09",
				EndDate:        "2023-05",
				Achievements: []string{
					"Relevant coursework: Data Structures, Algorithms, Web Development",
					"Senior project: Machine Learning recommendation system",
				},
			},
		},
		Certifications: []Certification{
			{Title: "Project+", Issuer: "CompTIA", IssuedDate: "2022-07"},
		},
		Interests: []Interest{
			{"Muay Thai", "Training a few nights a week."},
			{"Pool", "Shooting pool with friends."},
		},
	}
)

// SkillsByCategory groups skills keeping first-seen category order.
func (p Profile) SkillsByCategory() []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, s := range p.Skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s.Name)
	}
	return groups
}

type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}
