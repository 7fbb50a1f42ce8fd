package live

import (
	"fmt"
	"strings"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/geo"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

const gtfsRealtimeVersion = "2.0"

// StationLocator resolves the station names carried by live trains
type StationLocator interface {
	StationOnLine(line models.Line, name string) (*models.Station, bool)
}

// BuildFeed renders live trains as a GTFS-realtime dataset. Each train yields
// one entity with a TripUpdate for its next stop and a VehiclePosition placed
// at its current station, headed towards the next one.
func BuildFeed(trains []models.LiveTrain, stations StationLocator, now time.Time) *gtfs.FeedMessage {
	ts := uint64(now.Unix())
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(ts),
		},
	}

	for _, t := range trains {
		trip := &gtfs.TripDescriptor{
			TripId:  proto.String(t.TrainNumber),
			RouteId: proto.String(string(t.Line)),
		}
		vehicle := &gtfs.VehicleDescriptor{
			Id:    proto.String(t.TrainNumber),
			Label: proto.String(t.Route),
		}

		nextStop := stopID(t.Line, t.NextStation, stations)
		delay := int32(t.Delay.Duration().Seconds())
		arrival := now.Add(t.ETA.Duration()).Unix()

		position := &gtfs.VehiclePosition{
			Trip:            trip,
			Vehicle:         vehicle,
			StopId:          proto.String(nextStop),
			CurrentStatus:   gtfs.VehiclePosition_IN_TRANSIT_TO.Enum(),
			Timestamp:       proto.Uint64(ts),
			CongestionLevel: congestionLevel(t).Enum(),
			OccupancyStatus: occupancyStatus(t.CrowdLevel).Enum(),
			Position:        trainPosition(t, stations),
		}

		feed.Entity = append(feed.Entity, &gtfs.FeedEntity{
			Id: proto.String(t.TrainNumber),
			TripUpdate: &gtfs.TripUpdate{
				Trip:    trip,
				Vehicle: vehicle,
				StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
					{
						StopId: proto.String(nextStop),
						Arrival: &gtfs.TripUpdate_StopTimeEvent{
							Delay: proto.Int32(delay),
							Time:  proto.Int64(arrival),
						},
					},
				},
				Timestamp: proto.Uint64(ts),
				Delay:     proto.Int32(delay),
			},
			Vehicle: position,
		})
	}

	return feed
}

// EncodeFeed serializes a feed in the protobuf wire format
func EncodeFeed(feed *gtfs.FeedMessage) ([]byte, error) {
	data, err := proto.Marshal(feed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode GTFS-RT feed: %w", err)
	}
	return data, nil
}

func stopID(line models.Line, name string, stations StationLocator) string {
	if s, ok := stations.StationOnLine(line, name); ok {
		return s.Code
	}
	return strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

func trainPosition(t models.LiveTrain, stations StationLocator) *gtfs.Position {
	current, ok := stations.StationOnLine(t.Line, t.CurrentStation)
	if !ok {
		return nil
	}
	pos := &gtfs.Position{
		Latitude:  proto.Float32(float32(current.Latitude)),
		Longitude: proto.Float32(float32(current.Longitude)),
	}
	if next, ok := stations.StationOnLine(t.Line, t.NextStation); ok {
		bearing := geo.Bearing(current.Latitude, current.Longitude, next.Latitude, next.Longitude)
		pos.Bearing = proto.Float32(float32(bearing))
	}
	return pos
}

func congestionLevel(t models.LiveTrain) gtfs.VehiclePosition_CongestionLevel {
	switch {
	case t.Status != models.StatusDelayed:
		return gtfs.VehiclePosition_RUNNING_SMOOTHLY
	case t.Delay >= 5:
		return gtfs.VehiclePosition_SEVERE_CONGESTION
	default:
		return gtfs.VehiclePosition_CONGESTION
	}
}

func occupancyStatus(c models.CrowdLevel) gtfs.VehiclePosition_OccupancyStatus {
	switch c {
	case models.CrowdHigh:
		return gtfs.VehiclePosition_STANDING_ROOM_ONLY
	case models.CrowdModerate:
		return gtfs.VehiclePosition_FEW_SEATS_AVAILABLE
	default:
		return gtfs.VehiclePosition_MANY_SEATS_AVAILABLE
	}
}
