package handler

import (
	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

// ----- request DTOs -----

type travelerReq struct {
	Name       string `json:"name"`
	Preference string `json:"preference"` // window | aisle | none
	Minor      bool   `json:"minor"`
}

type partyReq struct {
	Class     string        `json:"class"`
	Travelers []travelerReq `json:"travelers"`
}

type seatReq struct {
	Class string `json:"class"`
	Name  string `json:"name"`
	Minor bool   `json:"minor"`
	Seat  string `json:"seat"`
}

// ----- response DTOs -----

type seatResp struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	Type  string  `json:"type"`
	Row   int     `json:"row"`
	Exit  bool    `json:"exit"`
	Cost  float64 `json:"cost"`
}

type assignmentResp struct {
	Traveler string  `json:"traveler"`
	Minor    bool    `json:"minor"`
	Seat     string  `json:"seat"`
	Type     string  `json:"type"`
	Row      int     `json:"row"`
	Exit     bool    `json:"exit"`
	Penalty  float64 `json:"penalty"`
}

type checkinResp struct {
	Flight      string           `json:"flight"`
	Class       string           `json:"class"`
	Status      string           `json:"status"`
	Score       float64          `json:"score"`
	Assignments []assignmentResp `json:"assignments"`
	Unseated    []string         `json:"unseated"`
}

type chartSeatResp struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	Exit     bool   `json:"exit"`
	Traveler string `json:"traveler,omitempty"`
}

type chartRowResp struct {
	Row   int             `json:"row"`
	Seats []chartSeatResp `json:"seats"`
}

type classChartResp struct {
	Class     string         `json:"class"`
	Capacity  int            `json:"capacity"`
	Available int            `json:"available"`
	Rows      []chartRowResp `json:"rows"`
}

type chartResp struct {
	Flight  string           `json:"flight"`
	Classes []classChartResp `json:"classes"`
	Lines   []string         `json:"lines"`
}

func toSeatResp(s model.Seat, cat *model.Catalog) seatResp {
	return seatResp{ID: s.ID, Label: s.Label, Type: cat.SeatTypeName(s.Type), Row: s.Row, Exit: s.Exit, Cost: s.Cost}
}

func toCheckinResp(flight string, res seating.CheckinResult, cat *model.Catalog) checkinResp {
	out := checkinResp{
		Flight:      flight,
		Class:       cat.ClassName(res.Class),
		Status:      res.Status.String(),
		Score:       res.Score,
		Assignments: make([]assignmentResp, 0, len(res.Assignments)),
		Unseated:    make([]string, 0, len(res.Unseated)),
	}
	for _, a := range res.Assignments {
		out.Assignments = append(out.Assignments, assignmentResp{
			Traveler: a.Traveler.Name,
			Minor:    a.Traveler.Minor,
			Seat:     a.Seat.Label,
			Type:     cat.SeatTypeName(a.Seat.Type),
			Row:      a.Seat.Row,
			Exit:     a.Seat.Exit,
			Penalty:  a.Penalty,
		})
	}
	for _, t := range res.Unseated {
		out.Unseated = append(out.Unseated, t.Name)
	}
	return out
}

func toClassChartResp(cc seating.ClassChart, cat *model.Catalog) classChartResp {
	out := classChartResp{
		Class:     cat.ClassName(cc.Class),
		Capacity:  cc.Capacity,
		Available: cc.Available,
		Rows:      make([]chartRowResp, 0, len(cc.Rows)),
	}
	for _, r := range cc.Rows {
		row := chartRowResp{Row: r.Number, Seats: make([]chartSeatResp, 0, len(r.Seats))}
		for _, s := range r.Seats {
			row.Seats = append(row.Seats, chartSeatResp{
				Label:    s.Label,
				Type:     cat.SeatTypeName(s.Type),
				Exit:     s.Exit,
				Traveler: s.Traveler,
			})
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
