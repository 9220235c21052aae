// Package server exposes the chat pipeline over a JSON HTTP API:
// /api/authenticate, /api/chat, /api/block-card, /api/reset.
package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/oakhigbe/globuschat/internal/models"
	"github.com/oakhigbe/globuschat/internal/types"
	"github.com/oakhigbe/globuschat/pkg/bank"
	"github.com/oakhigbe/globuschat/pkg/intent"
	"github.com/oakhigbe/globuschat/pkg/respond"
)

const sessionCookie = "globuschat"

// AccountNotFoundMsg is the normal negative result of authentication,
// not an error.
const AccountNotFoundMsg = "I couldn't find a Globus Bank account matching that number. " +
	"You're welcome to ask about our products and services."

// kbIntents are the labels that trigger a knowledge-base lookup.
var kbIntents = map[models.Intent]bool{
	models.IntentProductInquiry: true,
	models.IntentGeneralInquiry: true,
}

type ServerConfig struct {
	SecretKey       string
	MaxHistoryTurns int
	TopK            int
}

type Server struct {
	config    ServerConfig
	directory *bank.Directory
	resolver  *intent.Resolver
	retriever types.Retriever
	assembler *respond.Assembler
	sessions  *StateStore
}

func New(config ServerConfig, directory *bank.Directory, resolver *intent.Resolver, retriever types.Retriever, assembler *respond.Assembler) *Server {
	if config.SecretKey == "" {
		config.SecretKey = "globus-offline-dev-key"
	}
	if config.MaxHistoryTurns == 0 {
		config.MaxHistoryTurns = 8
	}
	if config.TopK == 0 {
		config.TopK = 3
	}

	return &Server{
		config:    config,
		directory: directory,
		resolver:  resolver,
		retriever: retriever,
		assembler: assembler,
		sessions:  NewStateStore(),
	}
}

// Echo builds the configured echo instance with all routes registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(s.config.SecretKey))))

	api := e.Group("/api")
	api.POST("/authenticate", s.handleAuthenticate)
	api.POST("/chat", s.handleChat)
	api.POST("/block-card", s.handleBlockCard)
	api.POST("/reset", s.handleReset)

	e.GET("/health", s.handleHealth)

	return e
}

// Start runs the server on the given port.
func (s *Server) Start(port string) error {
	return s.Echo().Start(":" + port)
}

// sessionID returns the session ID from the signed cookie, minting and
// saving a fresh one when create is set.
func (s *Server) sessionID(c echo.Context, create bool) (string, error) {
	sess, err := session.Get(sessionCookie, c)
	if err != nil && sess == nil {
		return "", err
	}

	if sid, ok := sess.Values["sid"].(string); ok && sid != "" {
		return sid, nil
	}
	if !create {
		return "", nil
	}

	sid := uuid.NewString()
	sess.Values["sid"] = sid
	sess.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400,
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return sid, nil
}

// handleAuthenticate validates the account number and initialises
// session state. A lookup miss still creates (anonymous) state so the
// user can chat about products.
func (s *Server) handleAuthenticate(c echo.Context) error {
	var req struct {
		AccountNumber string `json:"account_number"`
	}
	_ = c.Bind(&req) // a malformed body is treated as an empty one

	accountNumber := strings.TrimSpace(req.AccountNumber)
	if accountNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Please enter an account number.",
		})
	}

	sid, err := s.sessionID(c, true)
	if err != nil {
		return err
	}

	customer := s.directory.Lookup(accountNumber)
	s.sessions.Put(sid, &SessionState{
		Authenticated:  customer != nil,
		Customer:       customer,
		QueriedAccount: accountNumber,
	})

	if customer != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"name":    customer.Name,
			"message": "Welcome back, " + customer.Name + "! How can I help you today?",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": false,
		"name":    nil,
		"message": AccountNotFoundMsg,
	})
}

// handleChat runs one conversation turn: classify, retrieve when the
// intent calls for it, assemble the reply, persist the capped history.
func (s *Server) handleChat(c echo.Context) error {
	sid, _ := s.sessionID(c, false)
	state, ok := s.sessions.Get(sid)
	if sid == "" || !ok {
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": "Please enter your account number first.",
		})
	}

	var req struct {
		Message string `json:"message"`
	}
	_ = c.Bind(&req)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Message cannot be empty.",
		})
	}

	ctx := c.Request().Context()

	label := s.resolver.Classify(ctx, message)

	var productDocs string
	if kbIntents[label] {
		results, err := s.retriever.Query(ctx, message, s.config.TopK)
		if err != nil {
			log.Printf("[server] retrieval error: %v", err) // degrade to no docs
		}
		texts := make([]string, 0, len(results))
		for _, r := range results {
			texts = append(texts, r.Chunk.Text)
		}
		productDocs = strings.Join(texts, "\n\n---\n\n")
	}

	reply := s.assembler.Respond(ctx, respond.Request{
		Message:     message,
		Intent:      label,
		Customer:    state.Customer,
		ProductDocs: productDocs,
		History:     state.History,
	})

	state.History = append(state.History,
		models.ChatTurn{Role: "user", Content: message},
		models.ChatTurn{Role: "assistant", Content: reply},
	)
	state.History = trimHistory(state.History, s.config.MaxHistoryTurns)

	return c.JSON(http.StatusOK, echo.Map{
		"reply":  reply,
		"intent": string(label),
	})
}

// handleBlockCard executes the simulated core-banking card block once
// the chat flow has clarified which card to block.
func (s *Server) handleBlockCard(c echo.Context) error {
	sid, _ := s.sessionID(c, false)
	state, ok := s.sessions.Get(sid)
	if sid == "" || !ok || !state.Authenticated {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"message": "Authentication required.",
		})
	}
	if state.Customer == nil {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"message": "No account found in session.",
		})
	}

	var req struct {
		CardIssuer string `json:"card_issuer"`
		CardType   string `json:"card_type"`
	}
	_ = c.Bind(&req)

	issuer := strings.TrimSpace(req.CardIssuer)
	cardType := strings.TrimSpace(req.CardType)
	if issuer == "" || cardType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Both 'card_issuer' and 'card_type' are required.",
		})
	}

	result := bank.BlockCard(state.Customer, issuer, cardType)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusNotFound
		if result.AlreadyBlocked {
			status = http.StatusBadRequest
		}
	}
	return c.JSON(status, result)
}

// handleReset clears the session so the user can re-authenticate.
func (s *Server) handleReset(c echo.Context) error {
	sid, _ := s.sessionID(c, false)
	if sid != "" {
		s.sessions.Delete(sid)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Session cleared."})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"customers": s.directory.Customers(),
	})
}

// trimHistory keeps the newest maxTurns turns (one turn is a user
// message plus the assistant reply).
func trimHistory(history []models.ChatTurn, maxTurns int) []models.ChatTurn {
	limit := maxTurns * 2
	if len(history) > limit {
		return history[len(history)-limit:]
	}
	return history
}
