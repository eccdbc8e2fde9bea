package ws

import (
	"context"
	"encoding/json"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/live"
	"taskboard/internal/logger"
	"taskboard/internal/metrics"
	"taskboard/internal/service"
)

const snapshotTimeout = 5 * time.Second

// Hub turns the change bus into the live-query contract: each subscriber
// holds one parameterized enriched query, and every committed mutation makes
// the hub re-run that query and push the new result.
type Hub struct {
	bus     *live.Bus
	queries *service.TaskQueryService
}

func NewHub(bus *live.Bus, queries *service.TaskQueryService) *Hub {
	return &Hub{bus: bus, queries: queries}
}

// Subscription is one client's registered query.
type Subscription struct {
	Search  string
	UserIDs []int64
}

// Serve runs one subscriber until its connection drops: initial snapshot,
// then a fresh snapshot per bus signal. Blocks until done.
func (h *Hub) Serve(client *Client, sub Subscription) {
	go client.writePump()
	go client.readPump()

	id, changes := h.bus.Subscribe()
	defer h.bus.Unsubscribe(id)

	h.push(client, sub)

	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
			h.push(client, sub)
		case <-client.Done:
			return
		}
	}
}

func (h *Hub) push(client *Client, sub Subscription) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	tasks, err := h.queries.ListEnriched(ctx, sub.Search, sub.UserIDs)
	if err != nil {
		logger.Error("snapshot query failed", "error", err)
		if msg, merr := json.Marshal(ErrorMsg{Type: MsgError, Error: "query failed"}); merr == nil {
			h.send(client, msg)
		}
		return
	}
	if tasks == nil {
		tasks = []domain.EnrichedTask{}
	}

	msg, err := json.Marshal(Snapshot{Type: MsgSnapshot, Tasks: tasks})
	if err != nil {
		logger.Error("snapshot marshal failed", "error", err)
		return
	}

	h.send(client, msg)
	metrics.LiveSnapshots.Inc()
}

// send never blocks: a slow consumer drops snapshots, the next signal
// delivers a fresh one anyway.
func (h *Hub) send(client *Client, msg []byte) {
	select {
	case client.Send <- msg:
	default:
	}
}
