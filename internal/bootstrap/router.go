package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/Mansoorkhan799/latex-studio-backend/internal/api/http"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/api/http/middleware"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/auth"
	authmw "github.com/Mansoorkhan799/latex-studio-backend/internal/auth/middleware"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/compile"
	compilehttp "github.com/Mansoorkhan799/latex-studio-backend/internal/compile/http"
	dochttp "github.com/Mansoorkhan799/latex-studio-backend/internal/documents/http"
	docrepo "github.com/Mansoorkhan799/latex-studio-backend/internal/documents/repository"
	docservice "github.com/Mansoorkhan799/latex-studio-backend/internal/documents/service"
	exporthttp "github.com/Mansoorkhan799/latex-studio-backend/internal/export/http"
	latexhttp "github.com/Mansoorkhan799/latex-studio-backend/internal/latex/http"
	verhttp "github.com/Mansoorkhan799/latex-studio-backend/internal/versions/http"
	verrepo "github.com/Mansoorkhan799/latex-studio-backend/internal/versions/repository"
	verservice "github.com/Mansoorkhan799/latex-studio-backend/internal/versions/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CompilerURL string
	DB          *pgxpool.Pool
	Redis       *redis.Client
	AuthClient  *fbauth.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	if dep.AuthClient != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	} else {
		api.Use(auth.OptionalUser())
	}

	docService := docservice.NewDocumentService(
		docrepo.NewDocumentRepository(dep.DB),
		docrepo.NewTreeRepository(dep.DB),
	)
	docHandler := dochttp.NewHandler(docService)

	documentsGroup := api.Group("/documents")
	docHandler.Register(documentsGroup)
	docHandler.RegisterTree(api.Group("/tree"))

	historyService := verservice.NewHistoryService(verrepo.NewVersionRepository(dep.Redis))
	verhttp.NewHandler(historyService).Register(documentsGroup)

	latexhttp.NewHandler().Register(api.Group("/latex"))
	exporthttp.NewHandler().Register(api.Group("/export"))

	compileHandler := compilehttp.NewHandler(compile.NewClient(dep.CompilerURL))
	compileHandler.Register(api.Group("/compile"))

	return r
}
