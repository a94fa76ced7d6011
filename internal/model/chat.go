package model

import "time"

type Chat struct {
	ID        int32
	Name      string
	CreatedAt time.Time
}

func (c Chat) GetID() int32 { return c.ID }

type ChatDTO struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name" validate:"required,max=200"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d ChatDTO) GetID() int32 { return d.ID }

func ChatToDTO(c Chat) ChatDTO {
	return ChatDTO(c)
}

func ChatFromDTO(d ChatDTO) Chat {
	return Chat(d)
}

type ChatMessage struct {
	ID     int64
	ChatID int32
	UserID int64
	Body   string
	SentAt time.Time
}

func (m ChatMessage) GetID() int64 { return m.ID }

type ChatMessageDTO struct {
	ID     int64     `json:"id"`
	ChatID int32     `json:"chatId" validate:"required"`
	UserID int64     `json:"userId" validate:"required"`
	Body   string    `json:"body" validate:"required,max=4000"`
	SentAt time.Time `json:"sentAt"`
}

func (d ChatMessageDTO) GetID() int64 { return d.ID }

func ChatMessageToDTO(m ChatMessage) ChatMessageDTO {
	return ChatMessageDTO(m)
}

func ChatMessageFromDTO(d ChatMessageDTO) ChatMessage {
	return ChatMessage(d)
}
