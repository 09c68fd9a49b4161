package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"attendterm/internal/domain/ports"
	"attendterm/pkg/attendclient"
)

// Student запись студента на стороне сервиса
type Student struct {
	FingerID int    `json:"fingerId"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
}

// Class занятие по дню недели; Start и End смещения от полуночи
type Class struct {
	Weekday time.Weekday
	Start   time.Duration
	End     time.Duration
}

// Mark принятая отметка
type Mark struct {
	FingerID int       `json:"fingerId"`
	At       time.Time `json:"at"`
	Late     bool      `json:"late"`
}

// Config параметры заглушки
type Config struct {
	CapturePath string
	DeletePath  string
	DeleteToken string
	Grace       time.Duration // Опоздание после начала занятия
}

// Server заглушка сервиса посещаемости для стенда и тестов клиента
type Server struct {
	cfg Config
	log ports.Logger

	mu       sync.Mutex
	students map[int]Student
	classes  []Class
	marks    []Mark
}

// New создает заглушку без студентов и расписания
func New(cfg Config, log ports.Logger) *Server {
	if cfg.CapturePath == "" {
		cfg.CapturePath = attendclient.DefaultCapturePath
	}
	if cfg.DeletePath == "" {
		cfg.DeletePath = attendclient.DefaultDeletePath
	}
	if cfg.Grace <= 0 {
		cfg.Grace = 10 * time.Minute
	}
	return &Server{cfg: cfg, log: log, students: make(map[int]Student)}
}

// AddStudent добавляет или заменяет студента
func (s *Server) AddStudent(st Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.FingerID] = st
}

// AddClass добавляет занятие в расписание
func (s *Server) AddClass(c Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes = append(s.classes, c)
}

// Marks возвращает копию принятых отметок
func (s *Server) Marks() []Mark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Mark(nil), s.marks...)
}

// Router возвращает маршрутизатор заглушки
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc(s.cfg.CapturePath, s.handleCapture).Methods(http.MethodPost)
	r.HandleFunc(s.cfg.DeletePath, s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/api/attendance/marks", s.handleMarks).Methods(http.MethodGet)
	r.Use(s.logRequests)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Info("request", "method", r.Method, "path", r.URL.Path,
			"request_id", r.Header.Get(attendclient.HeaderRequestID))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var p attendclient.CapturePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.FingerID <= 0 {
		reply(w, http.StatusUnauthorized, "invalid parameters")
		return
	}
	at, err := time.Parse(time.RFC3339, p.Timestamp)
	if err != nil {
		reply(w, http.StatusPaymentRequired, "invalid timestamp format")
		return
	}
	// Симулированное время заменяет время отметки при поиске занятия
	now := at
	if p.CurrentDateTime != "" {
		now, err = time.Parse(time.RFC3339, p.CurrentDateTime)
		if err != nil {
			reply(w, http.StatusForbidden, "invalid currentDateTime format")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.students[p.FingerID]
	if !ok {
		reply(w, http.StatusNotFound, "student not found")
		return
	}
	if !st.Active {
		reply(w, http.StatusMethodNotAllowed, "account inactive")
		return
	}
	if len(s.classes) == 0 {
		reply(w, http.StatusNotAcceptable, "no active schedule")
		return
	}
	class, status := s.findClass(now)
	if status != http.StatusOK {
		reply(w, status, http.StatusText(status))
		return
	}
	for _, m := range s.marks {
		if m.FingerID == p.FingerID && sameDay(m.At, now) {
			reply(w, http.StatusConflict, "already marked")
			return
		}
	}

	late := sinceMidnight(now) > class.Start+s.cfg.Grace
	s.marks = append(s.marks, Mark{FingerID: p.FingerID, At: now, Late: late})
	if late {
		reply(w, http.StatusCreated, "attendance marked late")
		return
	}
	reply(w, http.StatusOK, "attendance marked")
}

// findClass ищет занятие на момент now: 407 если сегодня занятий нет, 408 если сейчас нет
func (s *Server) findClass(now time.Time) (Class, int) {
	today := false
	offset := sinceMidnight(now)
	for _, c := range s.classes {
		if c.Weekday != now.Weekday() {
			continue
		}
		today = true
		if offset >= c.Start && offset < c.End {
			return c, http.StatusOK
		}
	}
	if !today {
		return Class{}, http.StatusProxyAuthRequired
	}
	return Class{}, http.StatusRequestTimeout
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.cfg.DeleteToken == "" || r.URL.Query().Get("confirm") != s.cfg.DeleteToken {
		reply(w, http.StatusForbidden, "confirmation token mismatch")
		return
	}
	s.mu.Lock()
	s.students = make(map[int]Student)
	s.marks = nil
	s.mu.Unlock()
	reply(w, http.StatusOK, "student data deleted")
}

func (s *Server) handleMarks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Marks())
}

func reply(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func sinceMidnight(t time.Time) time.Duration {
	y, m, d := t.Date()
	return t.Sub(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
