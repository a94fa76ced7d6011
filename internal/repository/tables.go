package repository

import (
	"time"

	"go-tms-api/internal/model"
)

// Relation names accepted by Store.ListBy.
const (
	RelationCreatedBy    = "created_by"
	RelationProject      = "project"
	RelationSourceString = "source_string"
	RelationTranslation  = "translation"
	RelationChat         = "chat"
)

// orNow stamps unset timestamps on insert.
func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

var UsersTable = Table[model.User, int64]{
	Name:       "users",
	Columns:    []string{"username", "first_name", "middle_name", "last_name", "email", "profile_picture", "created_at"},
	CreateOnly: []string{"created_at"},
	Args: func(u model.User) []any {
		return []any{u.Username, u.FirstName, u.MiddleName, u.LastName, u.Email, u.ProfilePicture, orNow(u.CreatedAt)}
	},
	Dest: func(u *model.User) []any {
		return []any{&u.ID, &u.Username, &u.FirstName, &u.MiddleName, &u.LastName, &u.Email, &u.ProfilePicture, &u.CreatedAt}
	},
}

var ProjectsTable = Table[model.Project, int32]{
	Name:       "projects",
	Columns:    []string{"name", "description", "created_by", "created_at"},
	CreateOnly: []string{"created_at"},
	Args: func(p model.Project) []any {
		return []any{p.Name, p.Description, p.CreatedBy, orNow(p.CreatedAt)}
	},
	Dest: func(p *model.Project) []any {
		return []any{&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.CreatedAt}
	},
	Relations: map[string]string{RelationCreatedBy: "created_by"},
}

var LanguagesTable = Table[model.Language, int16]{
	Name:    "languages",
	Columns: []string{"code", "name"},
	Args: func(l model.Language) []any {
		return []any{l.Code, l.Name}
	},
	Dest: func(l *model.Language) []any {
		return []any{&l.ID, &l.Code, &l.Name}
	},
}

var SourceStringsTable = Table[model.SourceString, int64]{
	Name:    "source_strings",
	Columns: []string{"project_id", "key", "text", "context"},
	Args: func(s model.SourceString) []any {
		return []any{s.ProjectID, s.Key, s.Text, s.Context}
	},
	Dest: func(s *model.SourceString) []any {
		return []any{&s.ID, &s.ProjectID, &s.Key, &s.Text, &s.Context}
	},
	Relations: map[string]string{RelationProject: "project_id"},
}

var TranslationsTable = Table[model.Translation, int64]{
	Name:       "translations",
	Columns:    []string{"source_string_id", "language_id", "user_id", "text", "created_at"},
	CreateOnly: []string{"created_at"},
	Args: func(t model.Translation) []any {
		return []any{t.SourceStringID, t.LanguageID, t.UserID, t.Text, orNow(t.CreatedAt)}
	},
	Dest: func(t *model.Translation) []any {
		return []any{&t.ID, &t.SourceStringID, &t.LanguageID, &t.UserID, &t.Text, &t.CreatedAt}
	},
	Relations: map[string]string{RelationSourceString: "source_string_id"},
}

var TranslationVotesTable = Table[model.TranslationVote, int64]{
	Name:    "translation_votes",
	Columns: []string{"translation_id", "user_id", "is_upvote"},
	Args: func(v model.TranslationVote) []any {
		return []any{v.TranslationID, v.UserID, v.IsUpvote}
	},
	Dest: func(v *model.TranslationVote) []any {
		return []any{&v.ID, &v.TranslationID, &v.UserID, &v.IsUpvote}
	},
	Relations: map[string]string{RelationTranslation: "translation_id"},
}

var ChatsTable = Table[model.Chat, int32]{
	Name:       "chats",
	Columns:    []string{"name", "created_at"},
	CreateOnly: []string{"created_at"},
	Args: func(c model.Chat) []any {
		return []any{c.Name, orNow(c.CreatedAt)}
	},
	Dest: func(c *model.Chat) []any {
		return []any{&c.ID, &c.Name, &c.CreatedAt}
	},
}

var ChatMessagesTable = Table[model.ChatMessage, int64]{
	Name:       "chat_messages",
	Columns:    []string{"chat_id", "user_id", "body", "sent_at"},
	CreateOnly: []string{"sent_at"},
	Args: func(m model.ChatMessage) []any {
		return []any{m.ChatID, m.UserID, m.Body, orNow(m.SentAt)}
	},
	Dest: func(m *model.ChatMessage) []any {
		return []any{&m.ID, &m.ChatID, &m.UserID, &m.Body, &m.SentAt}
	},
	Relations: map[string]string{RelationChat: "chat_id"},
}
