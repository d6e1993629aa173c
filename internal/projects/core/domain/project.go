package domain

const DefaultProjectName = "Default Project"

type Project struct {
	ID   string
	Name string
}
