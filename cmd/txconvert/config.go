package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
)

type format int

const (
	formatJSON format = iota
	formatBinary
	formatCBOR
)

func (f format) String() string {
	switch f {
	case formatJSON:
		return "json"
	case formatBinary:
		return "binary"
	case formatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

func (f format) ext() string {
	if f == formatJSON {
		return ".json"
	}
	if f == formatCBOR {
		return ".cbor"
	}
	return ".bin"
}

func parseFormat(s string) (format, error) {
	switch strings.ToLower(s) {
	case "json":
		return formatJSON, nil
	case "binary", "bin", "bytes":
		return formatBinary, nil
	case "cbor":
		return formatCBOR, nil
	default:
		return 0, errors.Errorf("unsupported format %q", s)
	}
}

type longKind int

const (
	longInt64 longKind = iota
	longBigInt
	longDecimal
)

func parseLongKind(s string) (longKind, error) {
	switch strings.ToLower(s) {
	case "int64":
		return longInt64, nil
	case "bigint":
		return longBigInt, nil
	case "decimal":
		return longDecimal, nil
	default:
		return 0, errors.Errorf("unsupported long representation %q", s)
	}
}

type config struct {
	fs        afero.Fs
	inputs    []string
	output    string
	from      format
	to        format
	long      longKind
	base64    bool
	withID    bool
	workers   int
	logLevel  string
	logFilter string
}

func (c *config) parse(fs afero.Fs, args []string) error {
	var (
		from, to, long string
	)
	set := flag.NewFlagSet("txconvert", flag.ContinueOnError)
	set.StringSliceVarP(&c.inputs, "in", "i", nil,
		"Input file paths. Repeat the flag or separate paths with commas. If empty, reads from STDIN.")
	set.StringVarP(&c.output, "out", "o", "",
		"Output file path, or output directory when several inputs are given. If empty, writes to STDOUT.")
	set.StringVar(&from, "from", "json", "Input format. Supported values: json, binary, cbor.")
	set.StringVar(&to, "to", "binary", "Output format. Supported values: json, binary, cbor.")
	set.StringVar(&long, "long", "int64",
		"Representation of 64-bit integer fields. Supported values: int64, bigint, decimal.")
	set.BoolVar(&c.base64, "base64", false, "Binary and CBOR input and output are Base64 encoded.")
	set.BoolVar(&c.withID, "with-id", false, "Computes the transaction id and adds it to the output.")
	set.IntVar(&c.workers, "workers", 4, "Number of files converted concurrently.")
	set.StringVar(&c.logLevel, "log-level", "INFO", "Logging level. Supported levels: DEBUG, INFO, WARN, ERROR, FATAL.")
	set.StringVar(&c.logFilter, "log-filter", "", "Logging filter rules, for example \"debug+:convert info+:*\".")
	if err := set.Parse(args); err != nil {
		return err
	}
	var err error
	if c.from, err = parseFormat(from); err != nil {
		return errors.Wrap(err, "invalid --from")
	}
	if c.to, err = parseFormat(to); err != nil {
		return errors.Wrap(err, "invalid --to")
	}
	if c.long, err = parseLongKind(long); err != nil {
		return errors.Wrap(err, "invalid --long")
	}
	if c.withID && c.to == formatBinary {
		return errors.New("--with-id has no effect with --to binary, the binary form carries no id")
	}
	if c.workers < 1 {
		return errors.Errorf("invalid number of workers %d", c.workers)
	}
	c.fs = fs
	for _, in := range c.inputs {
		if err := c.checkInput(in); err != nil {
			return err
		}
	}
	if len(c.inputs) > 1 {
		if c.output == "" {
			return errors.New("output directory is required for several inputs")
		}
		if err := c.fs.MkdirAll(c.output, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %q", c.output)
		}
	}
	return nil
}

func (c *config) checkInput(str string) error {
	fi, err := c.fs.Stat(str)
	if errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("file %q does not exist", str)
	}
	if err != nil {
		return errors.Wrap(err, "invalid file path")
	}
	if fi.IsDir() {
		return errors.Errorf("path %q is not a file", str)
	}
	return nil
}

func (c *config) batch() bool {
	return len(c.inputs) > 1
}

// target returns the output path for the given input in batch mode.
func (c *config) target(in string) string {
	base := path.Base(in)
	return path.Join(c.output, strings.TrimSuffix(base, path.Ext(base))+c.to.ext())
}

func (c *config) read(in string, stdin io.Reader) ([]byte, error) {
	if in == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read input")
		}
		return b, nil
	}
	b, err := afero.ReadFile(c.fs, path.Clean(in))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input file %q", in)
	}
	return b, nil
}

func (c *config) write(out string, stdout io.Writer, data []byte) error {
	if out == "" {
		if _, err := stdout.Write(data); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
		return nil
	}
	if fi, err := c.fs.Stat(out); err == nil && fi.IsDir() {
		return errors.Errorf("path %q is not a file", out)
	}
	if err := afero.WriteFile(c.fs, path.Clean(out), data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write output file %q", out)
	}
	return nil
}
