package lsmtable

// Merger fuses two sorted Readers into one Writer. The three
// specialization axes from the original engine (key compare, merge,
// simplify) are selected by which function fields are non-nil, rather
// than by generating eight compiled variants: a nil check costs nothing
// next to the I/O this loop already does, and Go has no equivalent of
// the macro-expansion the original used to avoid an extra branch.
type Merger struct {
	Compare  CompareFunc
	Merge    MergeFunc
	Simplify SimplifyFunc
	Mode     Mode
}

// Run merges a and b into out. In Continuation mode it returns once at
// least iterations entries have been emitted (done is false, meaning the
// caller should call Run again to resume); in Flush mode the iteration
// budget is ignored and Run only returns once both readers are
// exhausted (done is true) or an error occurs. lastKey is the key of the
// last entry successfully fed to out, usable as a recovery checkpoint.
func (m *Merger) Run(a, b Reader, out Writer, iterations int) (done bool, lastKey []byte, err error) {
	compare := m.Compare
	if compare == nil {
		compare = defaultCompare
	}
	emitted := 0

	overBudget := func() bool {
		return m.Mode != Flush && emitted >= iterations
	}

	feed := func(key, value []byte) error {
		for {
			wantMore, ferr := out.FeedEntry(key, value)
			if ferr != nil {
				return ferr
			}
			if !wantMore {
				lastKey = append(lastKey[:0:0], key...)
				emitted++
				return nil
			}
		}
	}

	writeSimplified := func(key, value []byte) error {
		v, drop := m.applySimplify(key, value)
		if drop {
			return nil
		}
		return feed(key, v)
	}

	copyUntilEOFOrBudget := func(r Reader) error {
		for !r.EOF() {
			if err := writeSimplified(r.Key(), r.Value()); err != nil {
				return err
			}
			if err := r.Advance(); err != nil {
				return err
			}
			if overBudget() {
				return nil
			}
		}
		return nil
	}

	for {
		switch {
		case a.EOF() && b.EOF():
			return true, lastKey, nil

		case a.EOF():
			if err := copyUntilEOFOrBudget(b); err != nil {
				return false, lastKey, err
			}

		case b.EOF():
			if err := copyUntilEOFOrBudget(a); err != nil {
				return false, lastKey, err
			}

		default:
			cmp := compare(a.Key(), b.Key())
			switch {
			case cmp == 0 && m.Merge != nil:
				result, merged := m.Merge(a.Key(), a.Value(), b.Value())
				key := a.Key()
				switch result {
				case MergeUseA:
					err = writeSimplified(key, a.Value())
				case MergeUseB:
					err = writeSimplified(key, b.Value())
				case MergeSuccess:
					err = writeSimplified(key, merged)
				case MergeDrop:
					err = nil
				}
				if err != nil {
					return false, lastKey, err
				}
				if err := a.Advance(); err != nil {
					return false, lastKey, err
				}
				if err := b.Advance(); err != nil {
					return false, lastKey, err
				}

			case cmp <= 0:
				if err := writeSimplified(a.Key(), a.Value()); err != nil {
					return false, lastKey, err
				}
				if err := a.Advance(); err != nil {
					return false, lastKey, err
				}

			default:
				if err := writeSimplified(b.Key(), b.Value()); err != nil {
					return false, lastKey, err
				}
				if err := b.Advance(); err != nil {
					return false, lastKey, err
				}
			}
		}

		if a.EOF() && b.EOF() {
			return true, lastKey, nil
		}
		if overBudget() {
			return false, lastKey, nil
		}
	}
}

func (m *Merger) applySimplify(key, value []byte) (out []byte, drop bool) {
	if m.Simplify == nil {
		return value, false
	}
	switch result, simplified := m.Simplify(key, value); result {
	case SimplifyDelete:
		return nil, true
	case SimplifySuccess:
		return simplified, false
	default: // SimplifyIdentity
		return value, false
	}
}
