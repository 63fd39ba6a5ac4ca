package mathdoku

import "gopkg.in/yaml.v3"

// Assemble folds recognized values and operators into the cages and
// produces the final PuzzleSpec. operations is true iff any cage carries a
// non-empty operator, which is also the condition under which a missing
// operator on a multi-cell cage is considered a recognition gap rather
// than "this puzzle doesn't show operators".
func Assemble(n int, cages []Cage, values []CageValue, ops []Operator, difficulty string) PuzzleSpec {
	out := make([]Cage, len(cages))
	operations := false
	for i, cage := range cages {
		cage.Value = values[i]
		cage.Op = ops[i]
		out[i] = cage
		if ops[i] != OpNone {
			operations = true
		}
	}
	if difficulty == "" {
		difficulty = "?"
	}
	return PuzzleSpec{Size: n, Difficulty: difficulty, Operations: operations, Cages: out}
}

// flowCells marshals as a YAML flow-style sequence ([A1, B1, C1]) instead
// of yaml.v3's default block style, matching the original tool's document
// shape.
type flowCells []string

func (f flowCells) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range f {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c})
	}
	return node, nil
}

type cageDoc struct {
	Cells flowCells   `yaml:"cells"`
	Value interface{} `yaml:"value"`
	Op    string      `yaml:"op,omitempty"`
}

type puzzleDoc struct {
	Size       int       `yaml:"size"`
	Difficulty string    `yaml:"difficulty"`
	Operations bool      `yaml:"operations"`
	Cages      []cageDoc `yaml:"cages"`
}

// MarshalYAML implements yaml.Marshaler so a PuzzleSpec can be passed
// directly to yaml.Marshal / yaml.NewEncoder.
func (p PuzzleSpec) MarshalYAML() (interface{}, error) {
	doc := puzzleDoc{Size: p.Size, Difficulty: p.Difficulty, Operations: p.Operations}
	for _, cage := range p.Cages {
		cells := make(flowCells, len(cage.Cells))
		for i, cell := range cage.Cells {
			cells[i] = cellA1(cell.R, cell.C)
		}
		var value interface{}
		if cage.Value.Known {
			value = cage.Value.Int
		} else {
			value = cage.Value.Raw
		}
		doc.Cages = append(doc.Cages, cageDoc{
			Cells: cells,
			Value: value,
			Op:    cage.Op.Glyph(),
		})
	}
	return doc, nil
}
