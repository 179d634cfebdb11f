package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/example/shop-admin-service/internal/domain"
	"github.com/example/shop-admin-service/internal/metrics"
	"github.com/example/shop-admin-service/internal/usecase"
)

// LandingRoute — публичный маршрут, куда уводятся неавторизованные визиты.
const LandingRoute = "/"

// Deps — зависимости HTTP-слоя.
type Deps struct {
	Store      domain.ContentStore
	Verifier   domain.IdentityVerifier
	Events     domain.EventPublisher
	AdminEmail string
	// NewMirror создаёт зеркало под новую сессию.
	NewMirror func() domain.SessionMirror
	// ImageURL переводит идентификатор ассета в URL для отображения;
	// nil — идентификатор отдаётся как есть. Производный URL не хранится.
	ImageURL func(ref string) (string, error)
	Log      zerolog.Logger
}

// Server — HTTP-поверхность намерений дашборда. Отрисовка — не здесь:
// наружу уходят только JSON-представления состояния зеркала.
type Server struct {
	Router *mux.Router
	deps   Deps
	sess   *sessionManager
}

func NewServer(deps Deps) *Server {
	s := &Server{Router: mux.NewRouter(), deps: deps, sess: newSessionManager()}

	s.Router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.Router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/session", s.handleLogin).Methods(http.MethodPost)

	api := s.Router.PathPrefix("/api").Subrouter()
	api.Use(s.requireSession)
	api.HandleFunc("/session", s.handleLogout).Methods(http.MethodDelete)
	api.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/status", s.handleOrderStatus).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", s.handleDeleteOrder).Methods(http.MethodDelete)
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products", s.handleCreateProduct).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", s.handleUpdateProduct).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", s.handleDeleteProduct).Methods(http.MethodDelete)
	return s
}

// --- вход и охрана сессии ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		var body struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		token = body.Token
	}

	state, err := s.deps.Verifier.Verify(r.Context(), token)
	if err != nil {
		s.deps.Log.Warn().Err(err).Msg("identity verify")
	}

	switch domain.Authorize(state, s.deps.AdminEmail) {
	case domain.DecisionPending:
		metrics.GateDecisions.WithLabelValues("pending").Inc()
		writeError(w, http.StatusServiceUnavailable, "identity not loaded yet")
		return
	case domain.DecisionRedirect:
		metrics.GateDecisions.WithLabelValues("redirect").Inc()
		http.Redirect(w, r, LandingRoute, http.StatusSeeOther)
		return
	}
	metrics.GateDecisions.WithLabelValues("allowed").Inc()

	sess := s.sess.create(state.Email, s.deps.NewMirror())

	// загрузка зеркала: ровно один раз на сессию, сразу после допуска
	usecase.LoadSession{Store: s.deps.Store, Mirror: sess.Mirror, Log: s.deps.Log}.Execute(r.Context())
	metrics.SessionLoads.Inc()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: sess.ID, Path: "/", HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: LoginMarkerCookie, Value: "true", Path: "/"})
	writeOK(w, http.StatusCreated, "session started", map[string]string{"session_id": sess.ID})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	s.sess.drop(sess.ID)
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: LoginMarkerCookie, Value: "", Path: "/", MaxAge: -1})
	writeOK(w, http.StatusOK, "session ended", nil)
}

type sessionCtxKey struct{}

// requireSession кладёт сессию в контекст запроса: обработчик работает с
// тем снимком, который прошёл проверку, даже если конкурирующий logout
// успел выбросить сессию из реестра.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			http.Redirect(w, r, LandingRoute, http.StatusSeeOther)
			return
		}
		sess, ok := s.sess.get(c.Value)
		if !ok {
			http.Redirect(w, r, LandingRoute, http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) session(r *http.Request) *session {
	sess, _ := r.Context().Value(sessionCtxKey{}).(*session)
	return sess
}

// --- заказы ---

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	status := r.URL.Query().Get("status")
	if status == "" {
		status = domain.FilterAll
	}
	orders := usecase.FilterOrders{Mirror: sess.Mirror}.Execute(status)
	writeJSON(w, http.StatusOK, s.orderViews(orders))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	writeJSON(w, http.StatusOK, usecase.DashboardStats{Mirror: sess.Mirror}.Execute())
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	id := mux.Vars(r)["id"]
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uc := usecase.SetOrderStatus{Store: s.deps.Store, Mirror: sess.Mirror, Events: s.deps.Events}
	err := uc.Execute(r.Context(), id, body.Status)
	metrics.Mutations.WithLabelValues("set_order_status", metrics.Outcome(err)).Inc()
	if err != nil {
		s.deps.Log.Error().Err(err).Str("order_id", id).Msg("set order status")
		writeError(w, storeErrStatus(err), "Failed to update order status.")
		return
	}
	writeOK(w, http.StatusOK, "Order marked as "+body.Status, nil)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	id := mux.Vars(r)["id"]

	uc := usecase.DeleteOrder{Store: s.deps.Store, Mirror: sess.Mirror, Events: s.deps.Events}
	err := uc.Execute(r.Context(), id, confirmed(r))
	if errors.Is(err, domain.ErrNotConfirmed) {
		// неподтверждённое удаление не считаем мутацией: до хранилища оно не дошло
		writeError(w, http.StatusBadRequest, "confirmation required")
		return
	}
	metrics.Mutations.WithLabelValues("delete_order", metrics.Outcome(err)).Inc()
	if err != nil {
		s.deps.Log.Error().Err(err).Str("order_id", id).Msg("delete order")
		writeError(w, storeErrStatus(err), "Failed to delete the order.")
		return
	}
	writeOK(w, http.StatusOK, "The order has been deleted.", nil)
}

// --- товары ---

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	writeJSON(w, http.StatusOK, s.productViews(sess.Mirror.Products()))
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	var draft domain.ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uc := usecase.CreateProduct{Store: s.deps.Store, Mirror: sess.Mirror, Events: s.deps.Events}
	p, err := uc.Execute(r.Context(), draft)
	metrics.Mutations.WithLabelValues("create_product", metrics.Outcome(err)).Inc()
	if err != nil {
		s.deps.Log.Error().Err(err).Msg("create product")
		// черновик остаётся у фронтенда, он может повторить отправку
		writeError(w, storeErrStatus(err), "Failed to add product.")
		return
	}
	writeOK(w, http.StatusCreated, "Product added successfully.", s.productView(p))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	id := mux.Vars(r)["id"]
	var draft domain.ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uc := usecase.UpdateProduct{Store: s.deps.Store, Mirror: sess.Mirror, Events: s.deps.Events}
	p, err := uc.Execute(r.Context(), id, draft)
	metrics.Mutations.WithLabelValues("update_product", metrics.Outcome(err)).Inc()
	if err != nil {
		s.deps.Log.Error().Err(err).Str("product_id", id).Msg("update product")
		writeError(w, storeErrStatus(err), "Failed to update product.")
		return
	}
	writeOK(w, http.StatusOK, "Product updated successfully.", s.productView(p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	id := mux.Vars(r)["id"]

	uc := usecase.DeleteProduct{Store: s.deps.Store, Mirror: sess.Mirror, Events: s.deps.Events}
	err := uc.Execute(r.Context(), id, confirmed(r))
	if errors.Is(err, domain.ErrNotConfirmed) {
		writeError(w, http.StatusBadRequest, "confirmation required")
		return
	}
	metrics.Mutations.WithLabelValues("delete_product", metrics.Outcome(err)).Inc()
	if err != nil {
		s.deps.Log.Error().Err(err).Str("product_id", id).Msg("delete product")
		writeError(w, storeErrStatus(err), "Failed to delete product.")
		return
	}
	writeOK(w, http.StatusOK, "Product has been deleted.", nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, http.StatusOK, "ok", nil)
}

// --- представления и утилиты ---

type cartItemView struct {
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type orderView struct {
	domain.Order
	CartItems []cartItemView `json:"cartItems"`
}

type productView struct {
	domain.Product
	ImageURL string `json:"image_url,omitempty"`
}

func (s *Server) orderViews(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		v := orderView{Order: o, CartItems: make([]cartItemView, 0, len(o.CartItems))}
		for _, it := range o.CartItems {
			v.CartItems = append(v.CartItems, cartItemView{
				Name:     it.Name,
				Image:    it.Image,
				ImageURL: s.resolveImage(it.Image),
			})
		}
		views = append(views, v)
	}
	return views
}

func (s *Server) productViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, s.productView(p))
	}
	return views
}

func (s *Server) productView(p domain.Product) productView {
	return productView{Product: p, ImageURL: s.resolveImage(p.Image)}
}

func (s *Server) resolveImage(ref string) string {
	if ref == "" || s.deps.ImageURL == nil {
		return ""
	}
	u, err := s.deps.ImageURL(ref)
	if err != nil {
		return ""
	}
	return u
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func storeErrStatus(err error) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

type envelope struct {
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeOK(w http.ResponseWriter, code int, msg string, data any) {
	writeJSON(w, code, envelope{Result: "ok", Message: msg, Data: data})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{Result: "error", Message: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
