package dataset

// document mirrors network.yaml
type document struct {
	Lines          []lineDoc          `yaml:"lines" validate:"required,min=1,dive"`
	Timetables     []timetableDoc     `yaml:"timetables" validate:"dive"`
	LiveTrains     []liveTrainDoc     `yaml:"liveTrains" validate:"dive"`
	Fares          []fareDoc          `yaml:"fares" validate:"required,min=1,dive"`
	ServiceUpdates []serviceUpdateDoc `yaml:"serviceUpdates" validate:"dive"`
	Notifications  []notificationDoc  `yaml:"notifications" validate:"dive"`
}

type lineDoc struct {
	Line     string       `yaml:"line" validate:"required,oneof=western central harbour"`
	Stations []stationDoc `yaml:"stations" validate:"required,min=1,dive"`
}

type stationDoc struct {
	Code       string   `yaml:"code" validate:"required,alphanum"`
	Name       string   `yaml:"name" validate:"required"`
	Zone       int      `yaml:"zone" validate:"min=1"`
	Facilities []string `yaml:"facilities" validate:"dive,oneof=parking food atm restroom mall"`
	Lat        float64  `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon        float64  `yaml:"lon" validate:"gte=-180,lte=180"`
}

type timetableDoc struct {
	Line   string   `yaml:"line" validate:"required,oneof=western central harbour"`
	From   string   `yaml:"from" validate:"required"`
	To     string   `yaml:"to" validate:"required"`
	Slow   []runDoc `yaml:"slow" validate:"dive"`
	Fast   []runDoc `yaml:"fast" validate:"dive"`
	Ladies []runDoc `yaml:"ladies" validate:"dive"`
}

type runDoc struct {
	Departure string `yaml:"departure" validate:"required"`
	Arrival   string `yaml:"arrival" validate:"required"`
	Platform  int    `yaml:"platform" validate:"min=1"`
	Train     string `yaml:"train" validate:"required"`
	Status    string `yaml:"status" validate:"oneof=on-time delayed"`
}

type liveTrainDoc struct {
	Line    string `yaml:"line" validate:"required,oneof=western central harbour"`
	Train   string `yaml:"train" validate:"required"`
	Route   string `yaml:"route" validate:"required"`
	Current string `yaml:"current" validate:"required"`
	Next    string `yaml:"next" validate:"required"`
	ETA     int    `yaml:"eta" validate:"min=1"`
	Status  string `yaml:"status" validate:"oneof=on-time delayed"`
	Delay   int    `yaml:"delay" validate:"gte=0"`
	Coaches int    `yaml:"coaches" validate:"min=1"`
	Crowd   string `yaml:"crowd" validate:"oneof=low moderate high"`
}

type fareDoc struct {
	From   int `yaml:"from" validate:"min=1"`
	To     int `yaml:"to" validate:"min=1"`
	Second int `yaml:"second" validate:"gte=0"`
	First  int `yaml:"first" validate:"gte=0"`
}

type serviceUpdateDoc struct {
	ID       int    `yaml:"id" validate:"min=1"`
	Time     string `yaml:"time" validate:"required"`
	Line     string `yaml:"line" validate:"required,oneof=western central harbour"`
	Message  string `yaml:"message" validate:"required"`
	Status   string `yaml:"status" validate:"required"`
	Priority string `yaml:"priority" validate:"oneof=low medium high"`
}

type notificationDoc struct {
	Title      string `yaml:"title" validate:"required"`
	Message    string `yaml:"message" validate:"required"`
	Type       string `yaml:"type" validate:"oneof=info warning success"`
	Line       string `yaml:"line" validate:"omitempty,oneof=western central harbour"`
	AgeMinutes int    `yaml:"ageMinutes" validate:"gte=0"`
}
