package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
	"github.com/wavesplatform/gowaves-transactions/pkg/proto"
)

type converter struct {
	cfg       *config
	logger    *zap.Logger
	converted *atomic.Int64
}

func newConverter(cfg *config, logger *zap.Logger) *converter {
	return &converter{cfg: cfg, logger: logger.Named("convert"), converted: atomic.NewInt64(0)}
}

// run converts every configured input. Without inputs it converts STDIN to the output or STDOUT.
func (c *converter) run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if len(c.cfg.inputs) == 0 {
		return c.file(ctx, "", c.cfg.output, stdin, stdout)
	}
	if !c.cfg.batch() {
		return c.file(ctx, c.cfg.inputs[0], c.cfg.output, stdin, stdout)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.workers)
	for _, in := range c.cfg.inputs {
		g.Go(func() error {
			return c.file(ctx, in, c.cfg.target(in), stdin, stdout)
		})
	}
	err := g.Wait()
	c.logger.Info("Batch finished", zap.Int64("converted", c.converted.Load()), zap.Int("inputs", len(c.cfg.inputs)))
	return err
}

func (c *converter) file(ctx context.Context, in, out string, stdin io.Reader, stdout io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := c.cfg.read(in, stdin)
	if err != nil {
		return err
	}
	res, err := c.convert(data)
	if err != nil {
		if in != "" {
			return errs.Extendf(err, "failed to convert %q", in)
		}
		return errs.Extend(err, "failed to convert input")
	}
	if err := c.cfg.write(out, stdout, res); err != nil {
		return err
	}
	c.converted.Inc()
	c.logger.Debug("Converted transaction",
		zap.String("input", in), zap.String("output", out),
		zap.Stringer("from", c.cfg.from), zap.Stringer("to", c.cfg.to), zap.Int("size", len(res)))
	return nil
}

func (c *converter) convert(data []byte) ([]byte, error) {
	switch c.cfg.long {
	case longBigInt:
		return convert[proto.BigInt](c.cfg, data)
	case longDecimal:
		return convert[proto.Decimal](c.cfg, data)
	default:
		return convert[proto.Int64](c.cfg, data)
	}
}

func convert[L proto.Long[L]](cfg *config, data []byte) ([]byte, error) {
	env, err := decode[L](cfg, data)
	if err != nil {
		return nil, err
	}
	if cfg.withID {
		if env, err = proto.WithGeneratedID(env); err != nil {
			return nil, err
		}
	}
	return encode(cfg, env)
}

func decode[L proto.Long[L]](cfg *config, data []byte) (proto.Envelope[L], error) {
	if cfg.from != formatJSON && cfg.base64 {
		b, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return proto.Envelope[L]{}, errors.Wrap(err, "invalid Base64 input")
		}
		data = b
	}
	switch cfg.from {
	case formatBinary:
		tx, err := proto.UnmarshalBinary[L](data)
		if err != nil {
			return proto.Envelope[L]{}, err
		}
		return proto.Wrap(tx), nil
	case formatCBOR:
		return proto.ParseCBOR[L](data)
	default:
		return proto.ParseJSON[L](bytes.TrimSpace(data))
	}
}

func encode[L proto.Long[L]](cfg *config, env proto.Envelope[L]) ([]byte, error) {
	var (
		res []byte
		err error
	)
	switch cfg.to {
	case formatBinary:
		res, err = proto.MarshalBinary(env.Tx)
	case formatCBOR:
		res, err = env.MarshalCBOR()
	default:
		res, err = json.Marshal(env)
		if err != nil {
			return nil, err
		}
		return append(res, '\n'), nil
	}
	if err != nil {
		return nil, err
	}
	if cfg.base64 {
		return []byte(base64.StdEncoding.EncodeToString(res)), nil
	}
	return res, nil
}
