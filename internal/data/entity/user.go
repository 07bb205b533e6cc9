package entity

type UserRole string

const (
	RoleLearner UserRole = "LEARNER"
	RoleTrainer UserRole = "TRAINER"
	RoleAdmin   UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleLearner, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type User struct {
	Base
	Name             string          `db:"name"`
	Email            string          `db:"email"`
	PasswordHash     string          `db:"password"`
	Role             UserRole        `db:"role"`
	Avatar           *string         `db:"avatar"`
	SkillsOffered    []string        `db:"skills_offered"`
	SkillsWanted     []string        `db:"skills_wanted"`
	Rating           float64         `db:"rating"`
	Bio              string          `db:"bio"`
	LinkedinURL      *string         `db:"linkedin_url"`
	GithubURL        *string         `db:"github_url"`
	PortfolioURL     *string         `db:"portfolio_url"`
	Certifications   []Certification `db:"certifications"`
	Experience       []Experience    `db:"experience"`
	Education        []Education     `db:"education"`
	ProfileCompleted bool            `db:"profile_completed"`
}

// RefreshProfileCompleted derives the completion flag from bio and offered skills
func (u *User) RefreshProfileCompleted() {
	u.ProfileCompleted = u.Bio != "" && len(u.SkillsOffered) > 0
}
