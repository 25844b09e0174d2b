package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/billing"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	additems "github.com/corray333/backend-labs/restaurant/internal/transport/http/add_items"
	createorder "github.com/corray333/backend-labs/restaurant/internal/transport/http/create_order"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/docs"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/foods"
	getbill "github.com/corray333/backend-labs/restaurant/internal/transport/http/get_bill"
	getorder "github.com/corray333/backend-labs/restaurant/internal/transport/http/get_order"
	listorders "github.com/corray333/backend-labs/restaurant/internal/transport/http/list_orders"
	paybill "github.com/corray333/backend-labs/restaurant/internal/transport/http/pay_bill"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	setstatus "github.com/corray333/backend-labs/restaurant/internal/transport/http/set_status"
	"github.com/corray333/backend-labs/restaurant/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/restaurant/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type orderService interface {
	Create(ctx context.Context, table int, items []order.Item) (order.Order, error)
	AddItems(ctx context.Context, id uuid.UUID, items []order.Item) (order.Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (order.Order, error)
	Get(ctx context.Context, id uuid.UUID) (order.DetailedOrder, error)
	List(ctx context.Context, filter order.QueryOrdersModel) ([]order.DetailedOrder, error)
}

type billingService interface {
	GetUnpaidBillForTable(ctx context.Context, table int) (billing.Bill, error)
	PayBillForTable(ctx context.Context, table int) (billing.Payment, error)
}

type menuService interface {
	List(ctx context.Context) ([]food.Food, error)
	Get(ctx context.Context, id uuid.UUID) (food.Food, error)
	Create(ctx context.Context, input food.Patch) (food.Food, error)
	Update(ctx context.Context, id uuid.UUID, patch food.Patch) (food.Food, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	orders  orderService
	billing billingService
	menu    menuService
}

func NewHTTPTransport(orders orderService, billing billingService, menu menuService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:  server,
		router:  router,
		orders:  orders,
		billing: billing,
		menu:    menu,
	}
}

func (h *HTTPTransport) Run() error {
	slog.Info("Starting HTTP server", "address", h.server.Addr)

	return h.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the root handler with every route registered.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/", h.root)
	h.router.Route("/swagger", docs.Routes)

	h.router.Route("/api", func(r chi.Router) {
		r.Route("/foods", foods.NewHandler(h.menu).Routes)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}/add-items", h.addItems)
			r.Patch("/{id}/status", h.setStatus)
		})

		r.Route("/billing/table/{table}", func(r chi.Router) {
			r.Get("/", h.getBill)
			r.Post("/pay", h.payBill)
		})
	})
}

func (h *HTTPTransport) root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("API is running..."))
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) addItems(w http.ResponseWriter, r *http.Request) {
	additems.AddItems(w, r, h.orders)
}

func (h *HTTPTransport) setStatus(w http.ResponseWriter, r *http.Request) {
	setstatus.SetStatus(w, r, h.orders)
}

func (h *HTTPTransport) getBill(w http.ResponseWriter, r *http.Request) {
	getbill.GetBill(w, r, h.billing)
}

func (h *HTTPTransport) payBill(w http.ResponseWriter, r *http.Request) {
	paybill.PayBill(w, r, h.billing)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(trace.NewTraceMiddleware(viper.GetString("otel.service_name")))
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)
	if timeout := viper.GetInt("server.http.request_timeout_seconds"); timeout > 0 {
		router.Use(middleware.Timeout(time.Duration(timeout) * time.Second))
	}

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	router.NotFound(response.NotFound)
	router.MethodNotAllowed(response.NotFound)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:      router,
		ReadTimeout:  time.Duration(viper.GetInt("server.http.read_timeout_seconds")) * time.Second,
		WriteTimeout: time.Duration(viper.GetInt("server.http.write_timeout_seconds")) * time.Second,
	}
}
