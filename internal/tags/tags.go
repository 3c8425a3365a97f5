// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package tags encodes metric tags as circonus stream tags.
package tags

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/circonus-labs/circonus-dcos-agent/internal/config"
	cgm "github.com/circonus-labs/circonus-gometrics/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Tag aliases cgm's Tag to centralize definition
type Tag = cgm.Tag

// Tags aliases cgm's Tags to centralize definition
type Tags = cgm.Tags

const (
	// Delimiter defines character separating category from value in a tag e.g. location:london
	Delimiter = ":"
	// Separator defines character separating tags in a list e.g. os:centos,location:sfo
	Separator = ","

	// UnitsCategory is the tag category carrying a metric's unit
	UnitsCategory = "units"

	MaxTags = 256

	streamTagsOpen  = "|ST["
	streamTagsClose = "]"
	encodedSig      = `b"` // cat or val has already been base64 encoded and formatted
	encodeFmt       = `b"%s"`
)

// GetBaseTags returns check.tags as a list, every metric carries
// at a minimum this same base set of tags.
func GetBaseTags() []string {
	// check.tags is a comma separated list of key:value pairs
	// viper handles stringSlices differently between command line and
	// environment, so it is kept as a single string.
	tagSpec := strings.TrimSpace(viper.GetString(config.KeyCheckTags))

	// systemd ExecStart=... --check-tags="c1:v1,c2:v1" leaves the
	// quotes in place.
	tagSpec = strings.TrimPrefix(tagSpec, `"`)
	tagSpec = strings.TrimSuffix(tagSpec, `"`)

	if tagSpec == "" {
		return []string{}
	}

	checkTags := strings.Split(tagSpec, Separator)
	tags := make([]string, 0, len(checkTags))
	for _, t := range checkTags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}

// FromList convert old style list of tags []string{"cat:val","cat:val",...} into a Tags structure
func FromList(tagList []string) Tags {
	if len(tagList) == 0 {
		return Tags{}
	}

	tags := make(Tags, 0, len(tagList))
	for _, tag := range tagList {
		t := strings.SplitN(tag, Delimiter, 2)
		if len(t) != 2 {
			log.Warn().Int("num", len(t)).Str("tag", tag).Msg("invalid tag format, ignoring")
			continue // must be *only* two
		}
		tags = append(tags, Tag{Category: t[0], Value: t[1]})
	}

	return tags
}

// WithUnits returns base plus a units tag.
func WithUnits(base Tags, unit string) Tags {
	tags := make(Tags, 0, len(base)+1)
	tags = append(tags, base...)
	if unit != "" {
		tags = append(tags, Tag{Category: UnitsCategory, Value: unit})
	}
	return tags
}

// MetricNameWithStreamTags will encode tags as stream tags into supplied metric name.
// Note: if metric name already has stream tags it is assumed the metric name and
// embedded stream tags are being managed manually and calling this method will have no effect.
func MetricNameWithStreamTags(metric string, tags Tags) string {
	if len(tags) == 0 {
		return metric
	}

	if strings.Contains(metric, streamTagsOpen) {
		return metric
	}

	taglist := EncodeMetricStreamTags(tags)
	if taglist != "" {
		return metric + streamTagsOpen + taglist + streamTagsClose
	}

	return metric
}

// SplitMetricName separates a metric name from its encoded stream tags.
func SplitMetricName(metric string) (string, string) {
	parts := strings.SplitN(metric, streamTagsOpen, 2)
	if len(parts) != 2 {
		return metric, ""
	}
	return parts[0], strings.TrimSuffix(parts[1], streamTagsClose)
}

// EncodeMetricStreamTags encodes Tags into a string suitable for use with
// stream tags. Tags directly embedded into metric names using the
// `metric_name|ST[<tags>]` syntax.
func EncodeMetricStreamTags(tags Tags) string {
	if len(tags) == 0 {
		return ""
	}

	tmpTags := EncodeMetricTags(tags)
	if len(tmpTags) == 0 {
		return ""
	}

	tagList := make([]string, 0, len(tmpTags))
	for _, tag := range tmpTags {
		tagParts := strings.SplitN(tag, Delimiter, 2)
		if len(tagParts) != 2 {
			log.Warn().Int("num", len(tagParts)).Str("tag", tag).Msg("invalid tag format, ignoring")
			continue
		}
		tc := tagParts[0]
		tv := tagParts[1]
		if !strings.HasPrefix(tc, encodedSig) {
			tc = fmt.Sprintf(encodeFmt, base64.StdEncoding.EncodeToString([]byte(strings.ToLower(tc))))
		}
		if !strings.HasPrefix(tv, encodedSig) {
			tv = fmt.Sprintf(encodeFmt, base64.StdEncoding.EncodeToString([]byte(tv)))
		}
		tagList = append(tagList, tc+Delimiter+tv)
	}

	return strings.Join(tagList, Separator)
}

// EncodeMetricTags encodes Tags into a sorted, de-duplicated list of
// cat:val strings.
func EncodeMetricTags(tags Tags) []string {
	if len(tags) == 0 {
		return []string{}
	}

	uniqueTags := make(map[string]bool)
	for i, t := range tags {
		if i >= MaxTags {
			log.Warn().Int("num", len(tags)).Int("max", MaxTags).Interface("tags", tags).Msg("too many tags, ignoring remainder")
			break
		}
		tc := t.Category
		tv := t.Value
		if !strings.HasPrefix(tc, encodedSig) {
			tc = strings.Map(removeSpaces, strings.ToLower(t.Category))
		}
		if tc == "" || tv == "" {
			log.Warn().Interface("tag", t).Msg("invalid tag format, ignoring")
			continue
		}
		uniqueTags[tc+Delimiter+tv] = true
	}

	tagList := make([]string, 0, len(uniqueTags))
	for t := range uniqueTags {
		tagList = append(tagList, t)
	}
	sort.Strings(tagList)
	return tagList
}

func removeSpaces(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}
