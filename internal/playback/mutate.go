package playback

import "github.com/verte-zerg/phrasedrill/internal/model"

// AddCollection appends a collection. The selection is unchanged.
func (e *Engine) AddCollection(name string, phrases []model.Phrase) error {
	if err := e.repo.Add(name, phrases); err != nil {
		return err
	}
	last := e.repo.Len() - 1
	e.listens.EnsureShape(last, e.repo.PhraseCount(last))
	e.notify()
	return nil
}

// RemoveCollection deletes a collection and its listen counts. Removing the
// selected collection stops playback and selects its neighbour.
func (e *Engine) RemoveCollection(index int) error {
	next, err := e.repo.Remove(index)
	if err != nil {
		return err
	}
	e.listens.RemoveCollection(index)
	switch {
	case index < e.collection:
		e.collection--
	case index == e.collection:
		e.halt()
		e.collection = next
		e.phrase = 0
		count := e.repo.PhraseCount(next)
		e.listens.EnsureShape(next, count)
		e.notice = ""
		if count == 0 {
			e.notice = NoPhrases
		}
	}
	e.notify()
	return nil
}

// RenameCollection renames the collection at index.
func (e *Engine) RenameCollection(index int, name string) error {
	if err := e.repo.Rename(index, name); err != nil {
		return err
	}
	e.notify()
	return nil
}

// AddPhrase appends a phrase to the collection at index.
func (e *Engine) AddPhrase(index int, phrase model.Phrase) error {
	if err := e.repo.AddPhrase(index, phrase); err != nil {
		return err
	}
	e.listens.EnsureShape(index, e.repo.PhraseCount(index))
	if index == e.collection && e.notice == NoPhrases {
		e.notice = ""
	}
	e.notify()
	return nil
}

// RemovePhrase deletes a phrase and shifts its listen counts. Removing the
// phrase being played restarts the sequence at whatever phrase now holds that
// position; emptying the selected collection stops playback.
func (e *Engine) RemovePhrase(index, phraseIndex int) error {
	if err := e.repo.RemovePhrase(index, phraseIndex); err != nil {
		return err
	}
	e.listens.RemovePhrase(index, phraseIndex)
	count := e.repo.PhraseCount(index)
	e.listens.EnsureShape(index, count)
	if index != e.collection {
		e.notify()
		return nil
	}

	switch {
	case count == 0:
		e.stopNoPhrases()
		return nil
	case phraseIndex < e.phrase:
		e.phrase--
	case phraseIndex == e.phrase:
		wasPlaying := e.playing
		active := e.state != Idle
		if e.phrase >= count {
			e.phrase = count - 1
		}
		if active {
			e.halt()
		}
		if wasPlaying {
			e.Play()
			return nil
		}
	}
	e.notify()
	return nil
}
