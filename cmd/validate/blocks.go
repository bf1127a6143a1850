// Copyright 2025 The rasa-pipelined Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/warwick-one-metre/rasa-pipelined/cmd/flags"
	"github.com/warwick-one-metre/rasa-pipelined/internal/blocks"
	"github.com/warwick-one-metre/rasa-pipelined/internal/encoding"
	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
)

const stdinArg = "-"

type blockReport struct {
	File  string `json:"file"`
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
	Error any    `json:"error,omitempty"`
}

func NewValidateBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks [path to block file or directory]...",
		Short: "Validates observation schedule blocks",
		Long: "Validates observation schedule blocks against the standard or the flats schema.\n" +
			"Directories are searched for .json, .yaml and .yml files (not recursively).\n" +
			"Use - to read a block from stdin.",
		Args:         cobra.MinimumNArgs(1),
		Example:      "rasa-pipelined validate blocks --kind flats dusk.yaml",
		SilenceUsage: true,
		RunE:         validateBlocks,
	}

	cmd.Flags().String(flags.Kind, "",
		"Schema to validate against (flats or standard).\nDefaults to blocks.default_kind from the configuration.")
	cmd.Flags().StringP(flags.Output, "o", flags.OutputText, "Output format (text or json)")
	cmd.Flags().BoolP(flags.Watch, "w", false,
		"Keep running and validate the block files again whenever they change")

	return cmd
}

// blockValidator checks block files and writes a report for each of them. Reports
// are serialized, as the watch mode checks files concurrently.
type blockValidator struct {
	actx   *appContext
	kind   blocks.Kind
	output string
	in     io.Reader
	out    io.Writer

	mut sync.Mutex
}

func validateBlocks(cmd *cobra.Command, args []string) error {
	actx, err := newAppContext(cmd)
	if err != nil {
		return err
	}

	kindName, _ := cmd.Flags().GetString(flags.Kind)
	if len(kindName) == 0 {
		kindName = actx.blocks.DefaultKind
	}

	kind, err := blocks.ParseKind(kindName)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString(flags.Output)
	if output != flags.OutputText && output != flags.OutputJSON {
		return errorchain.NewWithMessagef(pipelined.ErrArgument, "unsupported output format %q", output)
	}

	watch, _ := cmd.Flags().GetBool(flags.Watch)
	if watch && slices.Contains(args, stdinArg) {
		return errorchain.NewWithMessage(pipelined.ErrArgument, "stdin cannot be watched")
	}

	files, err := collectBlockFiles(args)
	if err != nil {
		return err
	}

	bv := &blockValidator{
		actx:   actx,
		kind:   kind,
		output: output,
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
	}

	failed := 0

	for _, path := range files {
		valid, err := bv.validate(path)
		if err != nil {
			return err
		}

		if !valid {
			failed++
		}
	}

	if watch {
		return watchBlockFiles(cmd.Context(), actx, files, bv)
	}

	if failed != 0 {
		return errorchain.NewWithMessagef(ErrInvalidBlocks, "%d of %d blocks failed validation", failed, len(files))
	}

	return nil
}

// collectBlockFiles replaces directories with the block files they contain. Other
// arguments are kept as given, so that unreadable files are reported per file.
func collectBlockFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		if arg == stdinArg {
			files = append(files, arg)

			continue
		}

		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			files = append(files, arg)

			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, errorchain.NewWithMessagef(pipelined.ErrArgument,
				"cannot read block directory %s", arg).CausedBy(err)
		}

		found := 0

		for _, entry := range entries {
			if entry.IsDir() || !isBlockFile(entry.Name()) {
				continue
			}

			files = append(files, filepath.Join(arg, entry.Name()))
			found++
		}

		if found == 0 {
			return nil, errorchain.NewWithMessagef(pipelined.ErrArgument,
				"no block files found in %s", arg)
		}
	}

	return files, nil
}

func isBlockFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func (bv *blockValidator) validate(path string) (bool, error) {
	err := bv.check(path)

	bv.actx.logger.Debug().
		Str("_file", path).
		Str("_kind", bv.kind.String()).
		Err(err).
		Msg("Block checked")

	bv.mut.Lock()
	defer bv.mut.Unlock()

	if printErr := printReport(bv.out, bv.output, blockReport{
		File:  path,
		Kind:  bv.kind.String(),
		Valid: err == nil,
		Error: errorForReport(err),
	}); printErr != nil {
		return false, printErr
	}

	return err == nil, nil
}

func (bv *blockValidator) check(path string) error {
	var src io.Reader

	if path == stdinArg {
		src = bv.in
	} else {
		file, err := os.Open(path)
		if err != nil {
			return errorchain.NewWithMessage(pipelined.ErrArgument, "cannot open block file").CausedBy(err)
		}

		defer file.Close()

		src = file
	}

	block, err := encoding.NewDecoder(
		encoding.WithSourceContentType(encoding.ContentTypeFromPath(path)),
		encoding.WithEnvVarsSubstitution(bv.actx.blocks.SubstituteEnvVars),
	).Decode(src)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errorchain.NewWithMessage(pipelined.ErrArgument, "block file is empty")
		}

		return err
	}

	return bv.actx.checker.Check(bv.kind, block)
}

func errorForReport(err error) any {
	if err == nil {
		return nil
	}

	if m, ok := err.(json.Marshaler); ok { // nolint: errorlint
		return m
	}

	return err.Error()
}

func printReport(out io.Writer, output string, rep blockReport) error {
	var err error

	switch {
	case output == flags.OutputJSON:
		err = json.NewEncoder(out).Encode(rep)
	case rep.Valid:
		_, err = fmt.Fprintf(out, "%s: valid %s block\n", rep.File, rep.Kind)
	default:
		_, err = fmt.Fprintf(out, "%s: invalid %s block: %v\n", rep.File, rep.Kind, rep.Error)
	}

	if err != nil {
		return errorchain.NewWithMessage(pipelined.ErrInternal, "failed to write report").CausedBy(err)
	}

	return nil
}
