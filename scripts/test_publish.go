//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/truckershub-backend/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	spotID := flag.String("spot", "", "parking spot id")
	status := flag.String("status", string(domain.OccupancyRed), "GREEN, YELLOW or RED")
	group := flag.String("group", "occupancy-broadcast-workers", "consumer group to wait for")
	flag.Parse()

	if *spotID == "" {
		log.Fatal("-spot is required")
	}
	if !domain.OccupancyStatus(*status).IsValid() {
		log.Fatalf("invalid status %q", *status)
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	now := time.Now().UTC()
	event := domain.OccupancyReportedEvent{
		ReportID:  uuid.NewString(),
		SpotID:    *spotID,
		Status:    domain.OccupancyStatus(*status),
		UserName:  "test_publish",
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamOccupancyReported,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamOccupancyReported)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Spot: %s -> %s\n", event.SpotID, event.Status)

	fmt.Printf("\nWaiting for group %q to ack...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for the broadcast worker")
			return
		case <-ticker.C:
			if acked(ctx, client, *group, id) {
				fmt.Println("Acked by the broadcast worker")
				return
			}
		}
	}
}

// acked reports whether the group has delivered id and no longer holds it pending
func acked(ctx context.Context, client *redis.Client, group, id string) bool {
	groups, err := client.XInfoGroups(ctx, domain.StreamOccupancyReported).Result()
	if err != nil {
		return false
	}

	delivered := false
	for _, g := range groups {
		if g.Name == group && g.LastDeliveredID >= id {
			delivered = true
		}
	}
	if !delivered {
		return false
	}

	pending, err := client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: domain.StreamOccupancyReported,
		Group:  group,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	return err == nil && len(pending) == 0
}
