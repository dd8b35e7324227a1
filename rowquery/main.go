package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"clockboard/pkg/board"
	"clockboard/pkg/region"
)

var (
	ErrOutOfBoard = errors.New("row outside the board")
)

type Request struct {
	Y        int64
	Strategy string
}

type Result struct {
	Error string `json:",omitempty"`
	Y     int64
	MinY  int64
	MaxY  int64
	Sum   int64
}

type Server struct {
	Rects []board.Rect
	Bands []board.Band
	Side  int64
}

func (s *Server) Answer(req Request) (res Result, err error) {
	res.Y = req.Y
	name := req.Strategy
	if name == "" {
		name = "tree"
	}
	strategy, err := region.ParseStrategy(name)
	if err != nil {
		return
	}
	i := board.Locate(s.Bands, req.Y)
	if req.Y < 0 || req.Y >= s.Side || i < 0 {
		err = fmt.Errorf("%w: %d", ErrOutOfBoard, req.Y)
		return
	}
	res.MinY, res.MaxY = s.Bands[i].MinY, s.Bands[i].MaxY
	res.Sum = strategy(s.Rects, s.Side, req.Y)
	return
}

// Serve answers one JSON request per line until r is exhausted.
// A bad request gets an error result and the loop carries on.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	decoder := json.NewDecoder(r)
	encoder := json.NewEncoder(w)
	for {
		var req Request
		err := decoder.Decode(&req)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				// the decoder cannot resync after a syntax error
				return encoder.Encode(Result{Error: err.Error()})
			}
			if err := encoder.Encode(Result{Error: err.Error()}); err != nil {
				return err
			}
			continue
		}
		res, err := s.Answer(req)
		if err != nil {
			res.Error = err.Error()
		}
		if err := encoder.Encode(res); err != nil {
			return err
		}
	}
}

func main() {
	rects := board.Default()
	s := &Server{
		Rects: rects,
		Bands: board.Partition(rects, board.Side),
		Side:  board.Side,
	}
	if err := s.Serve(os.Stdin, os.Stdout); err != nil {
		panic(err)
	}
}
