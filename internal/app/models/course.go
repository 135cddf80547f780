package models

// Course is one row of the course catalog. Credits keep the stored text.
type Course struct {
	ID          string `csv:"Course_id" json:"id" example:"DATA200"`
	Name        string `csv:"Course_name" json:"name" example:"Data Analytics"`
	Description string `csv:"Description" json:"description" example:"Intro to data analytics"`
	Credits     string `csv:"Credits" json:"credits" example:"3"`
}
