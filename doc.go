// Package msalign is an alignment engine for symbolic sequences —
// phonetic transcriptions first of all, but any tokenized strings with
// a pairwise similarity function.
//
// 🚀 What is msalign?
//
//	A library that brings together the classic alignment toolchain:
//		• Pairwise DP: global, local, semi-global (overlap), dialign
//		• Secondary structure: prosodic tags, position-specific gaps
//		• Profiles: block-vs-block alignment with consensus structure
//		• Guide trees: UPGMA, Neighbor-Joining, flat clustering
//		• Progressive & consistency (library) multiple alignment
//		• Iterative refinement: orphans, clusters, gap sites, all rows
//		• Swap detection for crossed (metathesized) sites
//
// ✨ Why choose msalign?
//
//   - Alphabet-agnostic – sound classes, sonority and scoring arrive
//     through small model interfaces, never hardcoded tables
//   - Deterministic – every tie-break is written down; identical input
//     yields identical columns on every run
//   - Explicit errors – sentinel errors matched with errors.Is, no
//     silent fallback scores
//
// Packages, bottom-up:
//
//	score     – scorer interface, score tables, consistency library
//	prosody   – sonority contours, prosodic tags, gap weighting
//	pairwise  – the four DP cores over dense score matrices
//	profile   – alignment blocks and block-vs-block merging
//	guidetree – UPGMA / Neighbor-Joining / flat clustering
//	msa       – the orchestrating session (start here)
//
// See msa.New and msa.Multiple.ProgAlign for the front door.
package msalign
