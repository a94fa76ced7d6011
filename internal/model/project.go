package model

import "time"

type Project struct {
	ID          int32
	Name        string
	Description *string
	CreatedBy   int64
	CreatedAt   time.Time
}

func (p Project) GetID() int32 { return p.ID }

type ProjectDTO struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name" validate:"required,max=200"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"createdBy" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (d ProjectDTO) GetID() int32 { return d.ID }

func ProjectToDTO(p Project) ProjectDTO {
	return ProjectDTO(p)
}

func ProjectFromDTO(d ProjectDTO) Project {
	return Project(d)
}

type SourceString struct {
	ID        int64
	ProjectID int32
	Key       string
	Text      string
	Context   *string
}

func (s SourceString) GetID() int64 { return s.ID }

type SourceStringDTO struct {
	ID        int64   `json:"id"`
	ProjectID int32   `json:"projectId" validate:"required"`
	Key       string  `json:"key" validate:"required,max=255"`
	Text      string  `json:"text" validate:"required"`
	Context   *string `json:"context,omitempty"`
}

func (d SourceStringDTO) GetID() int64 { return d.ID }

func SourceStringToDTO(s SourceString) SourceStringDTO {
	return SourceStringDTO(s)
}

func SourceStringFromDTO(d SourceStringDTO) SourceString {
	return SourceString(d)
}

type Language struct {
	ID   int16
	Code string
	Name string
}

func (l Language) GetID() int16 { return l.ID }

type LanguageDTO struct {
	ID   int16  `json:"id"`
	Code string `json:"code" validate:"required,max=16"`
	Name string `json:"name" validate:"required,max=100"`
}

func (d LanguageDTO) GetID() int16 { return d.ID }

func LanguageToDTO(l Language) LanguageDTO {
	return LanguageDTO(l)
}

func LanguageFromDTO(d LanguageDTO) Language {
	return Language(d)
}
