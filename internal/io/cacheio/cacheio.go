// Package cacheio decorates a store.Store with a key-value cache of lookup
// entities, so repeated places, professions and parent institutions do not
// hit the database again.
package cacheio

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gnames/gnfmt"
	"github.com/oeai/oeaimport/internal/ent/kv"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

type cacheio struct {
	store.Store
	kv  kv.KeyVal
	enc gnfmt.Encoder
}

// New opens kv and returns s wrapped with the cache.
func New(s store.Store, kv kv.KeyVal) (store.Store, error) {
	if err := kv.Open(); err != nil {
		slog.Error("Cannot open key-value store", "error", err)
		return nil, err
	}
	res := cacheio{Store: s, kv: kv, enc: gnfmt.GNgob{}}
	return &res, nil
}

func (c *cacheio) GetOrCreateInstitution(
	ctx context.Context,
	label string,
) (model.Institution, bool, error) {
	var res model.Institution
	key, err := lookupKey(model.KindInstitution, label)
	if err != nil {
		return res, false, err
	}
	if ok := c.get(key, &res); ok {
		return res, false, nil
	}
	res, created, err := c.Store.GetOrCreateInstitution(ctx, label)
	if err != nil {
		return res, false, err
	}
	c.set(key, res)
	return res, created, nil
}

func (c *cacheio) GetOrCreatePlace(
	ctx context.Context,
	label, featureCode string,
) (model.Place, bool, error) {
	var res model.Place
	key, err := lookupKey(model.KindPlace, label)
	if err != nil {
		return res, false, err
	}
	if ok := c.get(key, &res); ok {
		return res, false, nil
	}
	res, created, err := c.Store.GetOrCreatePlace(ctx, label, featureCode)
	if err != nil {
		return res, false, err
	}
	c.set(key, res)
	return res, created, nil
}

func (c *cacheio) GetOrCreateProfession(
	ctx context.Context,
	label string,
) (model.Profession, bool, error) {
	var res model.Profession
	key, err := lookupKey(model.KindProfession, label)
	if err != nil {
		return res, false, err
	}
	if ok := c.get(key, &res); ok {
		return res, false, nil
	}
	res, created, err := c.Store.GetOrCreateProfession(ctx, label)
	if err != nil {
		return res, false, err
	}
	c.set(key, res)
	return res, created, nil
}

func (c *cacheio) GetOrCreateIncludes(
	ctx context.Context,
	subj, obj model.Place,
) (model.Includes, bool, error) {
	var res model.Includes
	key := []byte(store.EdgeID("includes", subj, obj))
	if ok := c.get(key, &res); ok {
		return res, false, nil
	}
	res, created, err := c.Store.GetOrCreateIncludes(ctx, subj, obj)
	if err != nil {
		return res, false, err
	}
	c.set(key, res)
	return res, created, nil
}

// Close closes the cache and the wrapped store.
func (c *cacheio) Close() error {
	return errors.Join(c.kv.Close(), c.Store.Close())
}

// get decodes a cached value into out. Cache failures are logged and
// treated as misses.
func (c *cacheio) get(key []byte, out any) bool {
	val, err := c.kv.GetValue(key)
	if err != nil {
		slog.Warn("Cannot read lookup cache", "key", string(key), "error", err)
		return false
	}
	if val == nil {
		return false
	}
	if err = c.enc.Decode(val, out); err != nil {
		slog.Warn("Cannot decode cached value", "key", string(key), "error", err)
		return false
	}
	return true
}

func (c *cacheio) set(key []byte, val any) {
	bs, err := c.enc.Encode(val)
	if err != nil {
		slog.Warn("Cannot encode value for cache", "key", string(key), "error", err)
		return
	}
	if err = c.kv.SetValue(key, bs); err != nil {
		slog.Warn("Cannot write lookup cache", "key", string(key), "error", err)
	}
}

func lookupKey(kind model.Kind, label string) ([]byte, error) {
	label, err := store.NormLabel(label)
	if err != nil {
		return nil, err
	}
	return []byte(string(kind) + "|" + label), nil
}
