package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-tms-api/internal/handler"
	"go-tms-api/internal/model"
	"go-tms-api/internal/repository"
	"go-tms-api/internal/router"
	"go-tms-api/internal/service"
)

// newResources builds one gateway and handler per entity type served under /api.
func newResources(pool *pgxpool.Pool, recorder service.ChangeRecorder, pictures *service.PictureNormalizer) []router.ResourceRoutes {
	users := service.NewGateway[model.User, model.UserDTO, int64]("User",
		repository.NewStore(pool, repository.UsersTable),
		service.Mapper[model.User, model.UserDTO]{ToDTO: model.UserToDTO, ToEntity: model.UserFromDTO})
	users.SetPrepare(func(dto *model.UserDTO) error {
		picture, err := pictures.Normalize(dto.ProfilePicture)
		if err != nil {
			return err
		}
		dto.ProfilePicture = picture
		return nil
	})

	projects := service.NewGateway[model.Project, model.ProjectDTO, int32]("Project",
		repository.NewStore(pool, repository.ProjectsTable),
		service.Mapper[model.Project, model.ProjectDTO]{ToDTO: model.ProjectToDTO, ToEntity: model.ProjectFromDTO})

	languages := service.NewGateway[model.Language, model.LanguageDTO, int16]("Language",
		repository.NewStore(pool, repository.LanguagesTable),
		service.Mapper[model.Language, model.LanguageDTO]{ToDTO: model.LanguageToDTO, ToEntity: model.LanguageFromDTO})

	sourceStrings := service.NewGateway[model.SourceString, model.SourceStringDTO, int64]("SourceString",
		repository.NewStore(pool, repository.SourceStringsTable),
		service.Mapper[model.SourceString, model.SourceStringDTO]{ToDTO: model.SourceStringToDTO, ToEntity: model.SourceStringFromDTO})

	translations := service.NewGateway[model.Translation, model.TranslationDTO, int64]("Translation",
		repository.NewStore(pool, repository.TranslationsTable),
		service.Mapper[model.Translation, model.TranslationDTO]{ToDTO: model.TranslationToDTO, ToEntity: model.TranslationFromDTO})

	votes := service.NewGateway[model.TranslationVote, model.TranslationVoteDTO, int64]("TranslationVote",
		repository.NewStore(pool, repository.TranslationVotesTable),
		service.Mapper[model.TranslationVote, model.TranslationVoteDTO]{ToDTO: model.TranslationVoteToDTO, ToEntity: model.TranslationVoteFromDTO})

	chats := service.NewGateway[model.Chat, model.ChatDTO, int32]("Chat",
		repository.NewStore(pool, repository.ChatsTable),
		service.Mapper[model.Chat, model.ChatDTO]{ToDTO: model.ChatToDTO, ToEntity: model.ChatFromDTO})

	messages := service.NewGateway[model.ChatMessage, model.ChatMessageDTO, int64]("ChatMessage",
		repository.NewStore(pool, repository.ChatMessagesTable),
		service.Mapper[model.ChatMessage, model.ChatMessageDTO]{ToDTO: model.ChatMessageToDTO, ToEntity: model.ChatMessageFromDTO})

	for _, g := range []interface{ SetRecorder(service.ChangeRecorder) }{
		users, projects, languages, sourceStrings, translations, votes, chats, messages,
	} {
		g.SetRecorder(recorder)
	}

	userExists := func(ctx context.Context, id int64) error {
		_, err := users.GetByID(ctx, id)
		return err
	}

	return []router.ResourceRoutes{
		handler.NewResourceHandler[model.UserDTO, int64]("/users", users),
		handler.NewResourceHandler[model.ProjectDTO, int32]("/projects", projects,
			handler.ListRoute{Path: "/user/{id}", Relation: repository.RelationCreatedBy, OwnerOnly: true, Parent: "User", ParentLookup: userExists}),
		handler.NewResourceHandler[model.LanguageDTO, int16]("/languages", languages),
		handler.NewResourceHandler[model.SourceStringDTO, int64]("/sourcestrings", sourceStrings,
			handler.ListRoute{Path: "/project/{id}", Relation: repository.RelationProject, Parent: "Project"}),
		handler.NewResourceHandler[model.TranslationDTO, int64]("/translations", translations,
			handler.ListRoute{Path: "/source/{id}", Relation: repository.RelationSourceString, Parent: "SourceString", RequireAny: true}),
		handler.NewResourceHandler[model.TranslationVoteDTO, int64]("/translationvotes", votes,
			handler.ListRoute{Path: "/translation/{id}", Relation: repository.RelationTranslation, Parent: "Translation", RequireAny: true}),
		handler.NewResourceHandler[model.ChatDTO, int32]("/chats", chats),
		handler.NewResourceHandler[model.ChatMessageDTO, int64]("/chatmessages", messages,
			handler.ListRoute{Path: "/chat/{id}", Relation: repository.RelationChat, Parent: "Chat"}),
	}
}
