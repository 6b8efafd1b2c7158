package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/common"
	"github.com/dronemarket/catalog/pkg/engine"
	"github.com/dronemarket/catalog/pkg/session"
	"github.com/dronemarket/catalog/pkg/types"
)

type toggleBody struct {
	Kind    string `json:"kind"`
	Code    string `json:"code,omitempty"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

type searchBody struct {
	Query string `json:"query"`
}

type priceBody struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

type sortBody struct {
	Sort string `json:"sort"`
}

// StateView is the JSON form of a filter state, selection sets flattened to
// sorted lists.
type StateView struct {
	Sources    []string            `json:"sources"`
	Categories []string            `json:"categories"`
	Brands     []string            `json:"brands"`
	Attributes map[string][]string `json:"attributes"`
	Search     string              `json:"search"`
	PriceMin   *int                `json:"priceMin"`
	PriceMax   *int                `json:"priceMax"`
	Sort       types.SortMode      `json:"sort"`
}

func newStateView(state *types.FilterState) *StateView {
	view := &StateView{
		Sources:    make([]string, 0, len(state.Sources)),
		Categories: make([]string, 0, len(state.Categories)),
		Brands:     make([]string, 0, len(state.Brands)),
		Attributes: make(map[string][]string, len(state.AttributeValues)),
		Search:     state.Search,
		PriceMin:   state.PriceMin,
		PriceMax:   state.PriceMax,
		Sort:       state.Sort,
	}
	for id := range state.Sources {
		view.Sources = append(view.Sources, string(id))
	}
	for id := range state.Categories {
		view.Categories = append(view.Categories, string(id))
	}
	for v := range state.Brands {
		view.Brands = append(view.Brands, v)
	}
	slices.Sort(view.Sources)
	slices.Sort(view.Categories)
	slices.Sort(view.Brands)
	for code, set := range state.AttributeValues {
		if len(set) == 0 {
			continue
		}
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		slices.Sort(values)
		view.Attributes[string(code)] = values
	}
	return view
}

type sessionStateResponse struct {
	SessionId string          `json:"sessionId"`
	State     *StateView      `json:"state"`
	Result    *SearchResponse `json:"result"`
}

func (ws *WebServer) sessionFromRequest(r *http.Request) (*session.Session, bool) {
	id := r.URL.Query().Get("session")
	if id == "" {
		id = common.SessionCookie(r)
	}
	if id == "" {
		return nil, false
	}
	return ws.Sessions.Get(id)
}

func (ws *WebServer) sessionResult(id string, state *types.FilterState, loaded *catalog.Loaded) *SessionResponse {
	items, count := engine.ComputeVisible(loaded.Dataset.Products, state, loaded.Dataset)
	return &SessionResponse{
		SessionId: id,
		Result:    &SearchResponse{Count: count, Sort: state.Sort, Items: items},
	}
}

// withSession runs a mutation and the recomputation it triggers under the
// session lock, so the response always reflects the state it produced.
func (ws *WebServer) withSession(w http.ResponseWriter, r *http.Request, enc *json.Encoder, fn func(state *types.FilterState)) error {
	s, ok := ws.sessionFromRequest(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return enc.Encode(errorBody{Error: "unknown session"})
	}
	loaded := ws.Current()
	var resp *SessionResponse
	s.Do(func(state *types.FilterState) {
		fn(state)
		resp = ws.sessionResult(s.Id, state, loaded)
	})
	return enc.Encode(resp)
}

// CreateSession starts a browsing session, optionally preselecting one
// known category. Unknown preselect values are ignored without an error.
func (ws *WebServer) CreateSession(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	loaded := ws.Current()
	s := ws.Sessions.Create()
	var resp *SessionResponse
	s.Do(func(state *types.FilterState) {
		if c := r.URL.Query().Get("category"); c != "" {
			if _, ok := loaded.Dataset.CategoryById(types.CategoryId(c)); ok {
				state.Toggle(types.CategorySelection, c, true)
			}
		}
		resp = ws.sessionResult(s.Id, state, loaded)
	})
	common.SetSessionCookie(w, s.Id)
	return enc.Encode(resp)
}

func (ws *WebServer) SessionToggle(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	var body toggleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorBody{Error: err.Error()})
	}
	return ws.withSession(w, r, enc, func(state *types.FilterState) {
		if body.Code != "" {
			state.ToggleAttribute(types.AttributeCode(body.Code), body.Value, body.Checked)
		} else {
			state.Toggle(types.SelectionKind(body.Kind), body.Value, body.Checked)
		}
	})
}

func (ws *WebServer) SessionSearch(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	var body searchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorBody{Error: err.Error()})
	}
	return ws.withSession(w, r, enc, func(state *types.FilterState) {
		state.SetSearch(strings.TrimSpace(body.Query))
	})
}

func (ws *WebServer) SessionPrice(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	var body priceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorBody{Error: err.Error()})
	}
	return ws.withSession(w, r, enc, func(state *types.FilterState) {
		state.SetPriceMin(body.Min)
		state.SetPriceMax(body.Max)
	})
}

func (ws *WebServer) SessionSort(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	var body sortBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorBody{Error: err.Error()})
	}
	return ws.withSession(w, r, enc, func(state *types.FilterState) {
		state.SetSort(types.ParseSortMode(body.Sort))
	})
}

// SessionReset clears every selection, the search text, the price bounds
// and the sort mode in one step.
func (ws *WebServer) SessionReset(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	return ws.withSession(w, r, enc, func(state *types.FilterState) {
		state.Reset()
	})
}

func (ws *WebServer) SessionState(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	s, ok := ws.sessionFromRequest(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return enc.Encode(errorBody{Error: "unknown session"})
	}
	loaded := ws.Current()
	var resp *sessionStateResponse
	s.Do(func(state *types.FilterState) {
		result := ws.sessionResult(s.Id, state, loaded)
		resp = &sessionStateResponse{
			SessionId: s.Id,
			State:     newStateView(state),
			Result:    result.Result,
		}
	})
	return enc.Encode(resp)
}
