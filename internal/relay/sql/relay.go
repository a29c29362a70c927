package sqlrelay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/okunev/nostrcal/internal/record"
	"github.com/okunev/nostrcal/internal/relay"
	log "github.com/sirupsen/logrus"
)

var ErrConnectionFailed = errors.New("failed to connect")

const dbErrUniqueViolation = "23505"

type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// Store keeps relay records in Postgres, tags as a JSONB array so tag
// filters run server-side.
type Store struct {
	host     string
	port     int
	database string
	username string
	password string
	db       *sqlx.DB
}

func New(config Config) *Store {
	return &Store{
		host:     config.Host,
		port:     config.Port,
		database: config.Database,
		username: config.Username,
		password: config.Password,
	}
}

func (s *Store) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(
		ctx,
		"postgres",
		fmt.Sprintf(
			"sslmode=disable host=%s port=%d dbname=%s user=%s password=%s",
			s.host, s.port, s.database, s.username, s.password),
	)
	if err != nil {
		log.Errorf("failed to connect: %v", err)
		return ErrConnectionFailed
	}
	s.db = db
	return nil
}

func (s *Store) Close(_ context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (s *Store) Publish(ctx context.Context, r record.Raw) error {
	tags := r.Tags
	if tags == nil {
		tags = [][]string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		"INSERT INTO Records(id, pubkey, created_at, kind, content, tags) VALUES($1, $2, $3, $4, $5, $6)",
		r.ID, r.PubKey, r.CreatedAt, r.Kind, r.Content, data)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == dbErrUniqueViolation {
		return fmt.Errorf("duplicate ID %q: %w", r.ID, relay.ErrDuplicateRecordID)
	}
	return err
}

type row struct {
	ID        string `db:"id"`
	PubKey    string `db:"pubkey"`
	CreatedAt int64  `db:"created_at"`
	Kind      int    `db:"kind"`
	Content   string `db:"content"`
	Tags      []byte `db:"tags"`
}

func (s *Store) Fetch(ctx context.Context, f relay.Filter) ([]record.Raw, error) {
	query := strings.Builder{}
	query.WriteString("SELECT id, pubkey, created_at, kind, content, tags FROM Records")

	var clauses []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if len(f.Kinds) > 0 {
		clauses = append(clauses, "kind = ANY("+arg(pq.Array(f.Kinds))+")")
	}
	if len(f.Authors) > 0 {
		clauses = append(clauses, "pubkey = ANY("+arg(pq.Array(f.Authors))+")")
	}
	if len(f.IDs) > 0 {
		clauses = append(clauses, "id = ANY("+arg(pq.Array(f.IDs))+")")
	}
	if f.Since > 0 {
		clauses = append(clauses, "created_at >= "+arg(f.Since))
	}
	for key, accepted := range f.Tags {
		if len(accepted) == 0 {
			continue
		}
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(tags) AS tag WHERE tag->>0 = %s AND tag->>1 = ANY(%s))",
			arg(key), arg(pq.Array(accepted))))
	}

	if len(clauses) > 0 {
		query.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC, id")
	if f.Limit > 0 {
		query.WriteString(" LIMIT " + arg(f.Limit))
	}

	var rows []row
	if err := s.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, err
	}

	records := make([]record.Raw, 0, len(rows))
	for _, r := range rows {
		raw := record.Raw{
			ID:        r.ID,
			PubKey:    r.PubKey,
			CreatedAt: r.CreatedAt,
			Kind:      r.Kind,
			Content:   r.Content,
		}
		if err := json.Unmarshal(r.Tags, &raw.Tags); err != nil {
			log.Errorf("failed to decode tags of record %q: %v", r.ID, err)
			raw.Tags = nil
		}
		records = append(records, raw)
	}
	return records, nil
}
