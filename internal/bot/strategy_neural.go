package bot

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"github.com/rs/zerolog/log"
	"gorgonia.org/tensor"

	"github.com/freeeve/subset-tictactoe/pkg/tictactoe"
)

// NeuralModelPath is the ONNX policy file used by the "neural" strategy. Set
// at startup from NEURAL_MODEL_PATH.
var NeuralModelPath string

const (
	neuralPlanes = tictactoe.MaxPlayers + 1
	policyInput  = "board"
	policyOutput = "logits"
)

// neuralPolicy is a loaded model shared by every NeuralStrategy using the
// same file. Run is serialised.
type neuralPolicy struct {
	model *gonnx.Model
	mu    sync.Mutex
}

var (
	policiesMu sync.Mutex
	policies   = map[string]*neuralPolicy{}
)

func loadPolicy(path string) (*neuralPolicy, error) {
	policiesMu.Lock()
	defer policiesMu.Unlock()
	if p, ok := policies[path]; ok {
		return p, nil
	}
	model, err := gonnx.NewModelFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}
	p := &neuralPolicy{model: model}
	policies[path] = p
	return p, nil
}

// newNeuralOrFallback returns a NeuralStrategy, or the advanced strategy when
// the model cannot be loaded.
func newNeuralOrFallback() Strategy {
	s, err := NewNeuralStrategy(NeuralModelPath)
	if err != nil {
		log.Warn().Err(err).Msg("neural strategy unavailable; falling back to advanced")
		return &HeuristicStrategy{}
	}
	return s
}

// NeuralStrategy plays the empty cell with the highest policy logit. Winning
// cells are always taken first, and inference failures fall back to the
// advanced heuristic.
type NeuralStrategy struct {
	seat
	policy   *neuralPolicy
	fallback HeuristicStrategy
}

// NewNeuralStrategy loads the policy at path.
func NewNeuralStrategy(path string) (*NeuralStrategy, error) {
	if path == "" {
		path = "models/policy.onnx"
	}
	p, err := loadPolicy(path)
	if err != nil {
		return nil, err
	}
	return &NeuralStrategy{policy: p}, nil
}

func (*NeuralStrategy) Name() string { return "neural" }

func (s *NeuralStrategy) Reset(me tictactoe.Player, seats int) {
	s.seat.Reset(me, seats)
	s.fallback.Reset(me, seats)
}

func (s *NeuralStrategy) NextMove(b tictactoe.Board, catalog *tictactoe.Catalog, rng *rand.Rand) (tictactoe.Cell, error) {
	if b.Full() {
		return 0, ErrNoLegalMove
	}
	for c := tictactoe.Cell(0); c < tictactoe.BoardSize; c++ {
		if !b.IsOccupied(c) && catalog.IsWinningMove(b, s.me, c) {
			return c, nil
		}
	}

	logits, err := s.runPolicy(b)
	if err != nil {
		log.Debug().Err(err).Msg("neural policy failed; using advanced")
		return s.fallback.NextMove(b, catalog, rng)
	}

	move := tictactoe.Cell(-1)
	best := float32(math.Inf(-1))
	for c := tictactoe.Cell(0); c < tictactoe.BoardSize; c++ {
		if b.IsOccupied(c) {
			continue
		}
		if move < 0 || logits[c] > best {
			best = logits[c]
			move = c
		}
	}
	if move < 0 {
		return 0, ErrNoDecision
	}
	return move, nil
}

// EncodeBoard returns one-hot planes of shape [MaxPlayers+1][BoardSize]
// flattened row-major. Plane 0 marks empty cells, plane k marks the cells of
// the player k seats after me (plane 1 is me).
func EncodeBoard(b tictactoe.Board, me tictactoe.Player) []float32 {
	data := make([]float32, neuralPlanes*tictactoe.BoardSize)
	for c := tictactoe.Cell(0); c < tictactoe.BoardSize; c++ {
		p := b.PlayerAt(c)
		plane := 0
		if p != tictactoe.NoPlayer {
			plane = (int(p)-int(me)+tictactoe.MaxPlayers)%tictactoe.MaxPlayers + 1
		}
		data[plane*tictactoe.BoardSize+int(c)] = 1
	}
	return data
}

func (s *NeuralStrategy) runPolicy(b tictactoe.Board) ([]float32, error) {
	boardTensor := tensor.New(
		tensor.WithShape(1, neuralPlanes, tictactoe.BoardSize),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(EncodeBoard(b, s.me)),
	)
	inputs := gonnx.Tensors{policyInput: boardTensor}

	s.policy.mu.Lock()
	outputs, err := s.policy.model.Run(inputs)
	s.policy.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("policy run: %w", err)
	}

	out, ok := outputs[policyOutput]
	if !ok {
		return nil, fmt.Errorf("output %q not found", policyOutput)
	}
	var logits []float32
	switch d := out.Data().(type) {
	case []float32:
		logits = d
	case []float64:
		logits = make([]float32, len(d))
		for i, v := range d {
			logits[i] = float32(v)
		}
	default:
		return nil, fmt.Errorf("unexpected output type %T", d)
	}
	if len(logits) < tictactoe.BoardSize {
		return nil, fmt.Errorf("policy output too short: %d", len(logits))
	}
	return logits, nil
}
