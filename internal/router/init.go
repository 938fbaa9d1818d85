package router

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/config"
	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/container"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
	"github.com/oksasatya/go-ddd-content-platform/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-content-platform/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-ddd-content-platform/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-content-platform/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-ddd-content-platform/internal/interface/http"
	"github.com/oksasatya/go-ddd-content-platform/internal/router/modules"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

type storage struct {
	Members  repository.MemberRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository

	MemberQueries  application.MemberQueries
	PostQueries    application.PostQueries
	CommentQueries application.CommentQueries
}

func buildStorage(cfg *config.Config) storage {
	if cfg.StorageDriver == config.StoragePostgres && container.GetPGPool() != nil {
		pool := container.GetPGPool()
		return storage{
			Members:        pginfra.NewMemberRepository(pool),
			Posts:          pginfra.NewPostRepository(pool),
			Comments:       pginfra.NewCommentRepository(pool),
			MemberQueries:  pginfra.NewMemberDAO(pool),
			PostQueries:    pginfra.NewPostDAO(pool),
			CommentQueries: pginfra.NewCommentDAO(pool),
		}
	}
	members := memory.NewMemberRepository()
	posts := memory.NewPostRepository()
	comments := memory.NewCommentRepository()
	return storage{
		Members:        members,
		Posts:          posts,
		Comments:       comments,
		MemberQueries:  memory.NewMemberDAO(members),
		PostQueries:    memory.NewPostDAO(posts),
		CommentQueries: memory.NewCommentDAO(comments),
	}
}

func buildPostIndex(ctx context.Context, cfg *config.Config, log *logrus.Logger) application.PostIndex {
	if es := container.GetES(); es != nil {
		idx := search.NewPostIndex(es, cfg.ESPostsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			log.WithError(err).Warn("elasticsearch index unavailable, using in-memory search")
		} else {
			return idx
		}
	}
	return memory.NewPostIndex()
}

func buildEvents() application.EventPublisher {
	if pub := container.GetRabbitPub(); pub != nil {
		return messaging.NewEventPublisher(pub)
	}
	return nil
}

// Deps holds the services and handlers wired for one process.
type Deps struct {
	Storage  storage
	Guard    *application.Guard
	Auth     *application.AuthService
	Members  *application.MemberService
	Posts    *application.PostService
	Comments *application.CommentService
}

// BuildDeps wires the application from the container singletons.
func BuildDeps(ctx context.Context) Deps {
	cfg := container.GetConfig()
	log := container.GetLogger()
	if log == nil {
		log = helpers.NopLogger()
	}
	st := buildStorage(cfg)
	locks := container.GetKeyLock()
	events := buildEvents()
	tokens := container.GetJWT()

	return Deps{
		Storage:  st,
		Guard:    application.NewGuard(tokens, st.Members, log),
		Auth:     application.NewAuthService(st.Members, tokens, log),
		Members:  application.NewMemberService(st.Members, st.MemberQueries, events, locks, log),
		Posts:    application.NewPostService(st.Posts, st.PostQueries, buildPostIndex(ctx, cfg, log), events, locks, log),
		Comments: application.NewCommentService(st.Comments, st.Posts, st.Members, st.CommentQueries, events, locks, log),
	}
}

// InitModules wires every feature module into the registry. Call it once
// during startup.
func InitModules(ctx context.Context, r *Registry) Deps {
	cfg := container.GetConfig()
	log := container.GetLogger()
	d := BuildDeps(ctx)

	limits := modules.Limits{
		Redis:    container.GetRedis(),
		Login:    cfg.LoginRateLimit,
		Register: cfg.RegisterRateLimit,
		Window:   cfg.RateLimitWindow,
	}
	if cfg.Env == "development" {
		limits.AllowPrivate = true
	}
	cookies := helpers.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure, "/api/auth")

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Auth, cookies, log), limits))
	r.Add(modules.NewMemberModule(handlers.NewMemberHandler(d.Members, d.Posts, log), d.Guard, limits))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(d.Posts, log), d.Guard))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(d.Comments, log), d.Guard))
	return d
}
