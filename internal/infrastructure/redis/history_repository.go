// Package redis guarda el historial reciente de auditorías en una lista de Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// pushScript quita la entrada con el mismo id, inserta al inicio y recorta.
// KEYS[1] lista; ARGV[1] id; ARGV[2] JSON; ARGV[3] límite.
var pushScript = goredis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[3])
local current = redis.call('LRANGE', key, 0, -1)
for _, raw in ipairs(current) do
	local ok, e = pcall(cjson.decode, raw)
	if ok and type(e) == 'table' and e.id == ARGV[1] then
		redis.call('LREM', key, 0, raw)
	end
end
redis.call('LPUSH', key, ARGV[2])
redis.call('LTRIM', key, 0, limit - 1)
return redis.call('LLEN', key)
`)

type historyRecord struct {
	ID                 string          `json:"id"`
	StoreName          string          `json:"store_name"`
	Date               time.Time       `json:"date"`
	AuditorName        string          `json:"auditor_name"`
	TotalItems         int             `json:"total_items"`
	TotalDiscrepancies int             `json:"total_discrepancies"`
	AccuracyPct        decimal.Decimal `json:"accuracy_pct"`
}

// HistoryRepo implementación de HistoryRepository sobre una lista de Redis (más reciente en el índice 0).
type HistoryRepo struct {
	client *goredis.Client
	key    string
}

// NewHistoryRepository construye el adaptador; key es el nombre de la lista.
func NewHistoryRepository(client *goredis.Client, key string) *HistoryRepo {
	return &HistoryRepo{client: client, key: key}
}

// Push inserta la entrada de forma atómica y conserva solo repository.HistoryLimit.
func (r *HistoryRepo) Push(ctx context.Context, e entity.HistoryEntry) error {
	payload, err := json.Marshal(historyRecord(e))
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	if err := pushScript.Run(ctx, r.client, []string{r.key}, e.ID, string(payload), repository.HistoryLimit).Err(); err != nil {
		return fmt.Errorf("push history: %w", err)
	}
	return nil
}

// List devuelve lo más reciente primero. Las entradas ilegibles se descartan.
func (r *HistoryRepo) List(ctx context.Context) ([]entity.HistoryEntry, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, int64(repository.HistoryLimit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]entity.HistoryEntry, 0, len(raw))
	for _, s := range raw {
		var rec historyRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			continue
		}
		out = append(out, entity.HistoryEntry(rec))
	}
	return out, nil
}
