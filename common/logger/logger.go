package logger

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/LexiconIndonesia/jagriti-case-service/common/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const insertLogSQL = `INSERT INTO ` + db.LogTable + ` (id, level, message, session_id, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Setup configures the global zerolog logger
func Setup(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// LogEvent represents a persisted log event
type LogEvent struct {
	SessionID string
	Level     string
	Message   string
	Details   interface{}
}

// DatabaseLogHook implements zerolog.Hook and stores warnings and errors
type DatabaseLogHook struct {
	db       execer
	minLevel zerolog.Level
}

// NewDatabaseLogHook creates a new log hook
func NewDatabaseLogHook(conn execer) *DatabaseLogHook {
	return &DatabaseLogHook{
		db:       conn,
		minLevel: zerolog.WarnLevel,
	}
}

// Run implements zerolog.Hook.Run
func (h *DatabaseLogHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level < h.minLevel || level == zerolog.NoLevel {
		return
	}

	event := LogEvent{
		Level:   level.String(),
		Message: msg,
	}
	if id := extractField(msg, "sessionID"); id != "" {
		event.SessionID = id
	}
	if details := extractJSONDetails(msg); details != nil {
		event.Details = details
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := insertLog(ctx, h.db, event); err != nil {
			// the global logger carries this hook, so write to stderr directly
			fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
			fallback.Error().Err(err).Msg("Failed to log to database via hook")
		}
	}()
}

func insertLog(ctx context.Context, conn execer, event LogEvent) error {
	detailsJSON := json.RawMessage("{}")
	if event.Details != nil {
		b, err := json.Marshal(event.Details)
		if err == nil {
			detailsJSON = b
		}
	}

	var sessionID *string
	if event.SessionID != "" {
		sessionID = &event.SessionID
	}

	var message *string
	if event.Message != "" {
		message = &event.Message
	}

	_, err := conn.Exec(ctx, insertLogSQL,
		uuid.NewString(),
		event.Level,
		message,
		sessionID,
		detailsJSON,
		time.Now().UTC(),
	)
	return err
}

// extractField pulls a key=value token out of a free-form message
func extractField(msg, fieldName string) string {
	searchStr := fieldName + "="
	idx := strings.Index(msg, searchStr)
	if idx >= 0 {
		start := idx + len(searchStr)
		end := strings.IndexAny(msg[start:], " ,\n\t")
		if end < 0 {
			return msg[start:]
		}
		return msg[start : start+end]
	}
	return ""
}

func extractJSONDetails(msg string) interface{} {
	start := strings.Index(msg, "{")
	end := strings.LastIndex(msg, "}")

	if start >= 0 && end > start {
		var result interface{}
		if err := json.Unmarshal([]byte(msg[start:end+1]), &result); err == nil {
			return result
		}
	}

	return nil
}

// InitializeLogging adds the database hook to the global logger
func InitializeLogging(conn *db.DB) {
	log.Logger = log.Logger.Hook(NewDatabaseLogHook(conn.Pool))
}

// LogService reports on the health of the log sink
type LogService struct {
	db *db.DB
}

// NewLogService creates a new log service. db may be nil when persistence is disabled.
func NewLogService(db *db.DB) *LogService {
	return &LogService{
		db: db,
	}
}

// Enabled reports whether logs are persisted
func (s *LogService) Enabled() bool {
	return s.db != nil
}

// CheckDatabaseHealth pings the database
func (s *LogService) CheckDatabaseHealth(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Ping(ctx)
}

// GetDatabaseStats returns pool statistics, or nil when persistence is disabled
func (s *LogService) GetDatabaseStats() map[string]interface{} {
	if s.db == nil {
		return nil
	}
	return s.db.Stats()
}
