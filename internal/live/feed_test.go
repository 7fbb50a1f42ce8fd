package live

import (
	"math/rand"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/dataset"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/network"
)

func TestBuildFeed(t *testing.T) {
	ds, err := dataset.Load()
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	registry := network.NewRegistry(ds.Stations)
	state := NewState(ds.LiveTrains, rand.New(rand.NewSource(1)), nil)
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	feed := BuildFeed(state.All(), registry, now)

	if feed.GetHeader().GetIncrementality() != gtfs.FeedHeader_FULL_DATASET {
		t.Errorf("expected a full dataset feed")
	}
	if feed.GetHeader().GetTimestamp() != uint64(now.Unix()) {
		t.Errorf("header timestamp = %d", feed.GetHeader().GetTimestamp())
	}
	if len(feed.Entity) != 6 {
		t.Fatalf("expected 6 entities, got %d", len(feed.Entity))
	}

	byID := make(map[string]*gtfs.FeedEntity)
	for _, e := range feed.Entity {
		byID[e.GetId()] = e
	}

	delayed := byID["WR-S-025"]
	if delayed == nil {
		t.Fatal("missing WR-S-025")
	}
	if got := delayed.GetTripUpdate().GetDelay(); got != 300 {
		t.Errorf("trip delay = %d s, want 300", got)
	}
	stu := delayed.GetTripUpdate().GetStopTimeUpdate()
	if len(stu) != 1 || stu[0].GetStopId() != "MAH2" {
		t.Errorf("expected next stop MAH2, got %+v", stu)
	}
	if got := stu[0].GetArrival().GetTime(); got != now.Add(2*time.Minute).Unix() {
		t.Errorf("arrival time = %d", got)
	}
	if delayed.GetVehicle().GetOccupancyStatus() != gtfs.VehiclePosition_STANDING_ROOM_ONLY {
		t.Errorf("high crowd should map to STANDING_ROOM_ONLY")
	}
	if delayed.GetVehicle().GetCongestionLevel() != gtfs.VehiclePosition_SEVERE_CONGESTION {
		t.Errorf("5 minute delay should map to SEVERE_CONGESTION")
	}

	onTime := byID["WR-F-012"]
	pos := onTime.GetVehicle().GetPosition()
	if pos == nil {
		t.Fatal("expected a position for a train at Andheri")
	}
	if pos.GetLatitude() < 19.11 || pos.GetLatitude() > 19.13 {
		t.Errorf("latitude %f is not Andheri", pos.GetLatitude())
	}
	// Jogeshwari lies north of Andheri
	if b := pos.GetBearing(); b > 30 && b < 330 {
		t.Errorf("bearing %f is not roughly north", b)
	}
	if onTime.GetVehicle().GetCongestionLevel() != gtfs.VehiclePosition_RUNNING_SMOOTHLY {
		t.Errorf("on-time train should be RUNNING_SMOOTHLY")
	}
	if onTime.GetVehicle().GetStopId() != "JOG" {
		t.Errorf("stop id = %q, want JOG", onTime.GetVehicle().GetStopId())
	}
}

func TestEncodeFeed(t *testing.T) {
	ds, err := dataset.Load()
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	registry := network.NewRegistry(ds.Stations)
	state := NewState(ds.LiveTrains, rand.New(rand.NewSource(1)), nil)

	data, err := EncodeFeed(BuildFeed(state.All(), registry, time.Now()))
	if err != nil {
		t.Fatalf("EncodeFeed error: %v", err)
	}

	var decoded gtfs.FeedMessage
	if err := proto.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode feed: %v", err)
	}
	if len(decoded.Entity) != 6 {
		t.Errorf("decoded %d entities, want 6", len(decoded.Entity))
	}
}
