package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/geometry"
	"github.com/matzehuels/paragon/pkg/io"
)

// boardReport is the validation outcome of one board file.
type boardReport struct {
	name string
	err  error
}

// boardsCommand creates the boards command.
func (c *CLI) boardsCommand() *cobra.Command {
	var (
		classDir string
		edge     int
	)

	cmd := &cobra.Command{
		Use:   "boards <class>",
		Short: "List and validate the boards of a character class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("class-dir") {
				cfg.ClassDir = classDir
			}
			if cmd.Flags().Changed("edge") {
				cfg.Edge = edge
			}

			class := args[0]
			reports, err := checkBoards(cfg.ClassDir, class, cfg.Edge)
			if err != nil {
				return err
			}
			return printBoardReports(class, cfg.Edge, reports)
		},
	}

	cmd.Flags().StringVar(&classDir, "class-dir", "", "directory containing one sub-directory per class")
	cmd.Flags().IntVar(&edge, "edge", 0, "board edge length")

	return cmd
}

// checkBoards validates every board file of class individually so that all
// problems are reported at once.
func checkBoards(dir, class string, edge int) ([]boardReport, error) {
	if err := errors.ValidateClassName(class); err != nil {
		return nil, err
	}
	classDir := filepath.Join(dir, class)
	entries, err := os.ReadDir(classDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "directory for character class %q does not exist", class)
		}
		return nil, fmt.Errorf("read %s: %w", classDir, err)
	}

	var reports []boardReport
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != io.BoardExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), io.BoardExt)
		b, err := io.ImportBoard(filepath.Join(classDir, e.Name()))
		if err == nil {
			err = b.Validate(edge)
		}
		if err == nil && b.IsBlank() {
			err = errors.New(errors.ErrCodeInvalidConfig, "board name %q is reserved", board.BlankName)
		}
		reports = append(reports, boardReport{name: name, err: err})
	}
	return reports, nil
}

func printBoardReports(class string, edge int, reports []boardReport) error {
	printInfo("Class %s (%d boards, edge %d)", StyleHighlight.Render(class), len(reports), edge)

	var failed, hasBase bool
	for _, r := range reports {
		if r.name == board.BaseName {
			hasBase = true
		}
		if r.err != nil {
			failed = true
			printKeyValue(r.name, StyleWarning.Render(errors.UserMessage(r.err)))
			continue
		}
		printKeyValue(r.name, StyleSuccess.Render(iconSuccess))
	}

	if !hasBase {
		return errors.New(errors.ErrCodeInvalidConfig, "no %q board loaded for class %q", board.BaseName, class)
	}
	if failed {
		return errors.New(errors.ErrCodeInvalidShape, "class %q has invalid boards", class)
	}

	rows, cols, err := geometry.Dimensions(len(reports))
	if err != nil {
		return err
	}
	ar, ac, _ := geometry.Anchor(len(reports))
	printDetail("meta-grid %d×%d, base at (%d, %d)", rows, cols, ar, ac)
	return nil
}
