package specification

import "gorm.io/gorm"

// BySourceTextHash filters generation sessions by the fingerprint of their
// source text. Combined with UserOwnedBy it forms the cache key.
type BySourceTextHash struct {
	Hash string
}

func (s BySourceTextHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_text_hash = ?", s.Hash)
}

// HasCachedProposals keeps only sessions whose generation succeeded and whose
// proposal payload was attached. Sessions from failed attempts stay uncached
// and never satisfy a lookup.
type HasCachedProposals struct{}

func (s HasCachedProposals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("generated_proposals IS NOT NULL")
}
