package dcat

// Normalize converts one raw catalog item into a Record. It never fails:
// fields that are absent or in an unrecognized shape degrade to their empty
// value and the anomaly is logged.
//
// Per-field contract:
//   - identifier: scalar, falling back to "_about"; otherwise "".
//   - title, description: list of {_value,_lang} objects or strings, a single
//     such object, or a plain string; otherwise empty.
//   - publisher: scalar, or an object's "_about"; otherwise absent.
//   - issued: scalar kept raw; parsed when it matches the catalog format.
//   - keyword: list of {_value} objects (or one object); other entries skipped.
//   - distribution: list of objects with "format", one such object, or a
//     plain string naming the format; distinct values in first-seen order.
func Normalize(raw any) Record {
	item, ok := raw.(map[string]any)
	if !ok {
		logf("", "item is a %s, not an object", Classify(raw))
		return Record{}
	}

	r := Record{Identifier: identifier(item)}
	id := r.DatasetID()

	r.Title = localized(id, "title", item["title"])
	r.Description = localized(id, "description", item["description"])
	r.Publisher, r.HasPublisher = publisher(id, item["publisher"])
	r.Keywords = keywords(id, item["keyword"])
	r.DistributionFormats = formats(id, item["distribution"])

	if v, present := item["issued"]; present {
		if s, ok := ScalarString(v); ok {
			r.Issued = s
			if t, err := ParseIssued(s); err == nil {
				r.IssuedAt = t
				r.IssuedOK = true
			} else {
				logf(id, "issued kept raw (%v)", err)
			}
		} else {
			anomaly(id, "issued", v)
		}
	}
	return r
}

// NormalizeAll normalizes a page of items, preserving order.
func NormalizeAll(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, Normalize(it))
	}
	return out
}

func anomaly(id, field string, v any) {
	logf(id, "field %s: unrecognized %s shape, ignored", field, Classify(v))
}

func identifier(item map[string]any) string {
	for _, key := range []string{"identifier", "_about"} {
		if s, ok := ScalarString(item[key]); ok && s != "" {
			return s
		}
	}
	return ""
}

func textFromObject(obj map[string]any) (Text, bool) {
	s, ok := ScalarString(obj["_value"])
	if !ok || s == "" {
		return Text{}, false
	}
	lang, _ := ScalarString(obj["_lang"])
	return Text{Value: s, Lang: lang}, true
}

func localized(id, field string, v any) LocalizedText {
	switch Classify(v) {
	case Missing:
		return nil
	case Scalar:
		if s, _ := ScalarString(v); s != "" {
			return LocalizedText{{Value: s}}
		}
		return nil
	case Object:
		if t, ok := textFromObject(v.(map[string]any)); ok {
			return LocalizedText{t}
		}
		return nil
	}

	var out LocalizedText
	for _, e := range v.([]any) {
		switch Classify(e) {
		case Object:
			if t, ok := textFromObject(e.(map[string]any)); ok {
				out = append(out, t)
			}
		case Scalar:
			if s, _ := ScalarString(e); s != "" {
				out = append(out, Text{Value: s})
			}
		default:
			anomaly(id, field+"[]", e)
		}
	}
	return out
}

func publisher(id string, v any) (string, bool) {
	switch Classify(v) {
	case Missing:
		return "", false
	case Scalar:
		s, _ := ScalarString(v)
		return s, true
	case Object:
		if s, ok := ScalarString(v.(map[string]any)["_about"]); ok && s != "" {
			return s, true
		}
	}
	anomaly(id, "publisher", v)
	return "", false
}

func keywords(id string, v any) []Text {
	switch Classify(v) {
	case Missing:
		return nil
	case Object:
		if t, ok := textFromObject(v.(map[string]any)); ok {
			return []Text{t}
		}
		return nil
	case Scalar:
		anomaly(id, "keyword", v)
		return nil
	}

	var out []Text
	for _, e := range v.([]any) {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := textFromObject(obj); ok {
			out = append(out, t)
		}
	}
	return out
}

func formats(id string, v any) []string {
	var found []string
	switch Classify(v) {
	case Missing:
		return nil
	case Scalar:
		if s, _ := ScalarString(v); s != "" {
			found = append(found, s)
		}
	case Object:
		if f := FormatValue(v.(map[string]any)["format"]); f != "" {
			found = append(found, f)
		}
	case List:
		for _, e := range v.([]any) {
			obj, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if f := FormatValue(obj["format"]); f != "" {
				found = append(found, f)
			}
		}
	}
	if len(found) == 0 {
		return nil
	}
	return distinct(found)
}

func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
