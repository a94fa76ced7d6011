package model

import "time"

type Translation struct {
	ID             int64
	SourceStringID int64
	LanguageID     int16
	UserID         int64
	Text           string
	CreatedAt      time.Time
}

func (t Translation) GetID() int64 { return t.ID }

type TranslationDTO struct {
	ID             int64     `json:"id"`
	SourceStringID int64     `json:"sourceStringId" validate:"required"`
	LanguageID     int16     `json:"languageId" validate:"required"`
	UserID         int64     `json:"userId" validate:"required"`
	Text           string    `json:"text" validate:"required"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (d TranslationDTO) GetID() int64 { return d.ID }

func TranslationToDTO(t Translation) TranslationDTO {
	return TranslationDTO(t)
}

func TranslationFromDTO(d TranslationDTO) Translation {
	return Translation(d)
}

type TranslationVote struct {
	ID            int64
	TranslationID int64
	UserID        int64
	IsUpvote      bool
}

func (v TranslationVote) GetID() int64 { return v.ID }

type TranslationVoteDTO struct {
	ID            int64 `json:"id"`
	TranslationID int64 `json:"translationId" validate:"required"`
	UserID        int64 `json:"userId" validate:"required"`
	IsUpvote      bool  `json:"isUpvote"`
}

func (d TranslationVoteDTO) GetID() int64 { return d.ID }

func TranslationVoteToDTO(v TranslationVote) TranslationVoteDTO {
	return TranslationVoteDTO(v)
}

func TranslationVoteFromDTO(d TranslationVoteDTO) TranslationVote {
	return TranslationVote(d)
}
