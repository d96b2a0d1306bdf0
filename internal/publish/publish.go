// Package publish mirrors health reports into Redis: one hash per pack,
// plus a notification on the hash's channel for every field that changed.
package publish

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/config"
	"github.com/vitaminmoo/m18-tool/internal/m18"
)

// Publisher writes reports to a Redis server.
type Publisher struct {
	client *redis.Client
	prefix string
}

// New connects to the server described by cfg and checks it is reachable.
func New(ctx context.Context, cfg config.RedisConfig) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}
	return &Publisher{client: client, prefix: cfg.Key}, nil
}

// Key is the hash a pack's report lives under.
func Key(prefix string, serial uint32) string {
	return fmt.Sprintf("%s:%d", prefix, serial)
}

// Publish stores r and announces the fields that differ from the stored
// copy. It returns the names of the changed fields.
func (p *Publisher) Publish(ctx context.Context, r *m18.HealthReport) ([]string, error) {
	key := Key(p.prefix, r.ElectronicSerial)
	fields := Fields(r)

	prev, err := p.client.HGetAll(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	changed := changedFields(prev, fields)

	pipe := p.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	for _, f := range changed {
		pipe.Publish(ctx, key, f)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", key, err)
	}

	log.Debug().Str("key", key).Int("changed", len(changed)).Msg("Published health report")
	return changed, nil
}

// Close releases the connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Fields flattens a report into hash fields. The histogram is left out.
func Fields(r *m18.HealthReport) map[string]string {
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }
	f2 := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	fields := map[string]string{
		"battery-type":            u(uint64(r.BatteryType)),
		"description":             r.BatteryDescription,
		"serial":                  u(uint64(r.ElectronicSerial)),
		"manufacture-date":        r.ManufactureDate.UTC().Format("2006-01-02"),
		"days-since-first-charge": u(uint64(r.DaysSinceFirstCharge)),
		"pack-voltage":            f2(r.PackVoltage),
		"cell-imbalance":          u(uint64(r.CellImbalance)),
		"charge-count":            u(uint64(r.ChargingStats.TotalChargeCount)),
		"charge-count:redlink":    u(uint64(r.ChargingStats.RedlinkChargeCount)),
		"charge-count:dumb":       u(uint64(r.ChargingStats.DumbChargeCount)),
		"charge-time":             r.ChargingStats.TotalChargeTime,
		"low-voltage-charges":     u(uint64(r.ChargingStats.LowVoltageCharges)),
		"discharge-ah":            f2(r.UsageStats.TotalDischargeAh),
		"discharge-cycles":        f2(r.UsageStats.TotalDischargeCycles),
		"discharged-to-empty":     u(uint64(r.UsageStats.TimesDischargedToEmpty)),
		"overheat-events":         u(uint64(r.UsageStats.TimesOverheated)),
		"overcurrent-events":      u(uint64(r.UsageStats.OvercurrentEvents)),
		"low-voltage-events":      u(uint64(r.UsageStats.LowVoltageEvents)),
		"time-on-tool":            r.UsageStats.TotalTimeOnTool,
		"updated-at":              r.Timestamp.UTC().Format(time.RFC3339),
	}
	for i, mv := range r.CellVoltages {
		fields[fmt.Sprintf("cell-voltage:%d", i)] = u(uint64(mv))
	}
	if r.Temperature != nil {
		fields["temperature"] = f2(*r.Temperature)
	}
	return fields
}

// changedFields lists the keys of next whose values differ from prev,
// ignoring updated-at.
func changedFields(prev, next map[string]string) []string {
	var out []string
	for k, v := range next {
		if k == "updated-at" {
			continue
		}
		if old, ok := prev[k]; !ok || old != v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
