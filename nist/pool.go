//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package nist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type cellParam struct {
	ctx     context.Context
	weights *WeightTable
	refs    [][]string
	hyp     []string
	order   int
	out     *candidate
	wg      *sync.WaitGroup
}

func (p *cellParam) reset() {
	p.ctx = nil
	p.weights = nil
	p.refs = nil
	p.hyp = nil
	p.order = 0
	p.out = nil
	p.wg = nil
}

var cellParamPool = &sync.Pool{
	New: func() any { return new(cellParam) },
}

func createCellPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*cellParam)
		if !ok {
			panic("nist cell pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			cellParamPool.Put(param)
		}()
		if param.ctx.Err() != nil {
			return
		}
		*param.out = scoreCell(param.weights, param.refs, param.hyp, param.order)
	})
	if err != nil {
		return nil, fmt.Errorf("create nist cell pool: %w", err)
	}
	return pool, nil
}

// scoreCellsParallel fills cells[order-1][item] for every order and item on a
// pool of the given size. Only the computation runs concurrently: the caller
// merges the cells in a fixed order.
func scoreCellsParallel(
	ctx context.Context,
	size int,
	weights *WeightTable,
	references [][][]string,
	hypotheses [][]string,
	maxOrder int,
) ([][]candidate, error) {
	pool, err := createCellPool(size)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	cells := make([][]candidate, maxOrder)
	var wg sync.WaitGroup
	var submitErr error
submit:
	for i := 1; i <= maxOrder; i++ {
		cells[i-1] = make([]candidate, len(hypotheses))
		for j := range hypotheses {
			param := cellParamPool.Get().(*cellParam)
			param.ctx = ctx
			param.weights = weights
			param.refs = references[j]
			param.hyp = hypotheses[j]
			param.order = i
			param.out = &cells[i-1][j]
			param.wg = &wg
			wg.Add(1)
			if err := pool.Invoke(param); err != nil {
				wg.Done()
				param.reset()
				cellParamPool.Put(param)
				submitErr = fmt.Errorf("submit nist cell (order %d, item %d): %w", i, j, err)
				break submit
			}
		}
	}
	wg.Wait()
	if submitErr != nil {
		return nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cells, nil
}
