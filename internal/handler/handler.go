package handler

import (
	"net/http"

	md "github.com/adilzhm/textbook-service/pkg/middleware"
	"github.com/adilzhm/textbook-service/pkg/validate"
	"github.com/IBM/sarama"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	catalogSvc CatalogService
	requestSvc RequestService
	enqueuer   Enqueuer
	log        *zap.Logger
}

func New(catalogSvc CatalogService, requestSvc RequestService, producer sarama.SyncProducer, log *zap.Logger) *Handler {
	h := &Handler{
		catalogSvc: catalogSvc,
		requestSvc: requestSvc,
		enqueuer:   NewEnqueuer(producer),
		log:        log,
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	librarian := api.Group("/librarian")
	librarian.GET("/categories", h.GetCategories)
	librarian.POST("/categories/add", h.AddCategory)
	librarian.DELETE("/categories/remove/:name", h.RemoveCategory)
	librarian.GET("/books", h.GetBooks)
	librarian.GET("/books/category/:name", h.GetBooksByCategory)
	librarian.POST("/add", h.AddBook)
	librarian.PUT("/update", h.UpdateQuantity)
	librarian.DELETE("/remove/:bookID", h.RemoveBook)

	student := api.Group("/student")
	student.POST("/request-book", h.RequestBook)
	student.GET("/my-requests/:username", h.GetMyRequests)
	student.DELETE("/my-requests/:username", h.DeleteMyRequests)

	admin := api.Group("/admin")
	admin.GET("/pending-requests", h.GetPendingRequests)
	admin.DELETE("/pending-requests", h.DeletePendingRequests)
	admin.PUT("/process-request/:id", h.ProcessRequest)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
