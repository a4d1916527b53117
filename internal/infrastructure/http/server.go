// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

// Assistant is what the server needs from the core.
type Assistant interface {
	Explain(ctx context.Context, question string) entities.Resolution
	KnowledgeSize() int
}

// Server is the HTTP server for the chat API and page.
type Server struct {
	assistant Assistant
	logger    *zap.Logger
	addr      string
}

// NewServer creates a new HTTP server.
func NewServer(assistant Assistant, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		assistant: assistant,
		logger:    logger,
		addr:      addr,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// UI
	mux.HandleFunc("/", s.handleIndex)

	// API
	mux.HandleFunc("/api/ask", s.handleAsk)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/knowledge", s.handleKnowledge)

	return s.loggingMiddleware(mux)
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
	}

	s.logger.Info("memurbot server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string  `json:"answer,omitempty"`
	Found  bool    `json:"found"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// handleAsk resolves one question.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var question string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		question = req.Question
	} else {
		r.ParseForm()
		question = r.FormValue("question")
	}

	question = strings.TrimSpace(question)
	if question == "" {
		http.Error(w, "Question required", http.StatusBadRequest)
		return
	}

	logger := s.logger.With(zap.String("question_id", uuid.NewString()))
	logger.Info("question submitted", zap.String("question", question))
	res := s.assistant.Explain(r.Context(), question)
	logger.Info("question resolved",
		zap.String("source", string(res.Source)),
		zap.Float64("score", res.Score))

	writeJSON(w, http.StatusOK, askResponse{
		Answer: res.Text,
		Found:  res.Found,
		Source: string(res.Source),
		Score:  res.Score,
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleKnowledge reports how many entries are loaded.
func (s *Server) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"entries": s.assistant.KnowledgeSize()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handleIndex renders the chat page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

const indexHTML = `<!DOCTYPE html>
<html lang="tr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Okul Memur Botu</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 600px; margin: 2em auto; }
        #log { height: 400px; overflow-y: auto; border: 1px solid #ccc; padding: 8px; white-space: pre-wrap; }
        form { display: flex; gap: 5px; margin-top: 10px; }
        input { flex: 1; font-size: 1em; }
    </style>
</head>
<body>
    <h1>Okul Memur Botu</h1>
    <div id="log">Memur Bot: Okul Memur Botuna Hoş Geldiniz! Size nasıl yardımcı olabilirim?
</div>
    <form id="ask" onsubmit="send(event)">
        <input type="text" id="question" autocomplete="off">
        <button type="submit">Gönder</button>
    </form>
    <script>
        function add(prefix, text) {
            const log = document.getElementById('log');
            log.appendChild(document.createTextNode(prefix + text + '\n'));
            log.scrollTop = log.scrollHeight;
        }
        async function send(e) {
            e.preventDefault();
            const input = document.getElementById('question');
            const q = input.value.trim();
            if (!q) return;
            add('Siz: ', q);
            input.value = '';
            try {
                const resp = await fetch('/api/ask', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({question: q})
                });
                const data = await resp.json();
                if (data.found) add('Memur Bot: ', data.answer);
            } catch (err) {
                console.error(err);
            }
        }
    </script>
</body>
</html>`
