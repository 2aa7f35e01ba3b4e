package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayout is XML-RPC's dateTime.iso8601, which omits date separators
// (e.g. 19980717T14:08:55), unlike RFC 3339.
const dateLayout = "20060102T15:04:05"

// Parse decodes a complete XML-RPC document (a <methodCall> or a
// <methodResponse>) fed as one buffer: the body-framing layer upstream
// already assembles the full entity before handing it to this package,
// so there is no need to accept partial chunks here. Exactly one of the
// two return values is non-nil.
func Parse(data []byte) (*Request, *Response, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "methodCall":
			req, err := parseMethodCall(dec)
			return req, nil, err
		case "methodResponse":
			resp, err := parseMethodResponse(dec)
			return nil, resp, err
		default:
			return nil, nil, fmt.Errorf("xmlrpc: unexpected root element <%s>", se.Name.Local)
		}
	}
}

func parseMethodCall(dec *xml.Decoder) (*Request, error) {
	req := &Request{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "methodName":
				text, err := readText(dec, t.Name)
				if err != nil {
					return nil, err
				}
				req.MethodName = text
			case "params":
				params, err := parseParams(dec)
				if err != nil {
					return nil, err
				}
				req.Params = params
			default:
				return nil, fmt.Errorf("xmlrpc: unexpected <%s> inside <methodCall>", t.Name.Local)
			}
		case xml.EndElement:
			if t.Name.Local == "methodCall" {
				return req, nil
			}
		}
	}
}

func parseMethodResponse(dec *xml.Decoder) (*Response, error) {
	resp := &Response{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "params":
				params, err := parseParams(dec)
				if err != nil {
					return nil, err
				}
				resp.Params = params
			case "fault":
				f, err := parseFault(dec)
				if err != nil {
					return nil, err
				}
				resp.Fault = f
			default:
				return nil, fmt.Errorf("xmlrpc: unexpected <%s> inside <methodResponse>", t.Name.Local)
			}
		case xml.EndElement:
			if t.Name.Local == "methodResponse" {
				return resp, nil
			}
		}
	}
}

func parseFault(dec *xml.Decoder) (*Fault, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "value" {
				return nil, fmt.Errorf("xmlrpc: expected <value> inside <fault>, got <%s>", t.Name.Local)
			}
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			if v.Kind != Struct {
				return nil, fmt.Errorf("xmlrpc: <fault> value must be a struct")
			}
			f := &Fault{}
			if cv, ok := v.StructGet("faultCode"); ok {
				f.Code = cv.Int32Val
			}
			if sv, ok := v.StructGet("faultString"); ok {
				f.String = sv.StringVal
			}
			return f, drainUntilEnd(dec, "fault")
		}
	}
}

func parseParams(dec *xml.Decoder) ([]Value, error) {
	var params []Value
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "param" {
				return nil, fmt.Errorf("xmlrpc: expected <param>, got <%s>", t.Name.Local)
			}
			v, err := parseParam(dec)
			if err != nil {
				return nil, err
			}
			params = append(params, v)
		case xml.EndElement:
			if t.Name.Local == "params" {
				return params, nil
			}
		}
	}
}

func parseParam(dec *xml.Decoder) (Value, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "value" {
				return Value{}, fmt.Errorf("xmlrpc: expected <value>, got <%s>", se.Name.Local)
			}
			return parseValue(dec)
		}
	}
}

// parseValue is entered right after the opening <value> tag has been
// consumed, and returns once the matching </value> has been consumed.
func parseValue(dec *xml.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case xml.EndElement:
		if t.Name.Local == "value" {
			return StringValue(""), nil
		}
		return Value{}, fmt.Errorf("xmlrpc: unexpected </%s> inside <value>", t.Name.Local)

	case xml.CharData:
		var sb strings.Builder
		sb.Write(t)
		if err := drainBareValueText(dec, &sb); err != nil {
			return Value{}, err
		}
		return StringValue(sb.String()), nil

	case xml.StartElement:
		return parseTypedValue(dec, t)

	default:
		return Value{}, fmt.Errorf("xmlrpc: unexpected token inside <value>")
	}
}

func drainBareValueText(dec *xml.Decoder, sb *strings.Builder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "value" {
				return nil
			}
			return fmt.Errorf("xmlrpc: unexpected </%s> inside bare <value>", t.Name.Local)
		}
	}
}

func parseTypedValue(dec *xml.Decoder, start xml.StartElement) (Value, error) {
	switch start.Name.Local {
	case "struct":
		return parseStruct(dec)
	case "array":
		return parseArray(dec)
	case "i4", "int":
		text, err := readText(dec, start.Name)
		if err != nil {
			return Value{}, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("xmlrpc: invalid <%s> content %q: %w", start.Name.Local, text, err)
		}
		v := Int32Value(int32(n))
		return v, drainUntilEnd(dec, "value")
	case "boolean":
		text, err := readText(dec, start.Name)
		if err != nil {
			return Value{}, err
		}
		v := BooleanValue(strings.TrimSpace(text) == "1")
		return v, drainUntilEnd(dec, "value")
	case "double":
		text, err := readText(dec, start.Name)
		if err != nil {
			return Value{}, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, fmt.Errorf("xmlrpc: invalid <double> content %q: %w", text, err)
		}
		v := DoubleValue(f)
		return v, drainUntilEnd(dec, "value")
	case "string":
		text, err := readText(dec, start.Name)
		if err != nil {
			return Value{}, err
		}
		v := StringValue(text)
		return v, drainUntilEnd(dec, "value")
	case "dateTime.iso8601":
		text, err := readText(dec, start.Name)
		if err != nil {
			return Value{}, err
		}
		tm, err := time.Parse(dateLayout, strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("xmlrpc: invalid dateTime.iso8601 content %q: %w", text, err)
		}
		v := DateValue(tm)
		return v, drainUntilEnd(dec, "value")
	case "base64":
		text, err := readText(dec, start.Name)
		if err != nil {
			return Value{}, err
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("xmlrpc: invalid base64 content: %w", err)
		}
		v := BinaryValue(data)
		return v, drainUntilEnd(dec, "value")
	default:
		return Value{}, fmt.Errorf("xmlrpc: unexpected tag <%s> inside <value>", start.Name.Local)
	}
}

func parseStruct(dec *xml.Decoder) (Value, error) {
	var members []NamedValue
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "member" {
				return Value{}, fmt.Errorf("xmlrpc: expected <member>, got <%s>", t.Name.Local)
			}
			nv, err := parseMember(dec)
			if err != nil {
				return Value{}, err
			}
			members = append(members, nv)
		case xml.EndElement:
			if t.Name.Local == "struct" {
				return StructValue(members), drainUntilEnd(dec, "value")
			}
		}
	}
}

func parseMember(dec *xml.Decoder) (NamedValue, error) {
	var nv NamedValue
	var haveName, haveValue bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return NamedValue{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				text, err := readText(dec, t.Name)
				if err != nil {
					return NamedValue{}, err
				}
				nv.Name, haveName = text, true
			case "value":
				v, err := parseValue(dec)
				if err != nil {
					return NamedValue{}, err
				}
				nv.Value, haveValue = v, true
			default:
				return NamedValue{}, fmt.Errorf("xmlrpc: unexpected <%s> inside <member>", t.Name.Local)
			}
		case xml.EndElement:
			if t.Name.Local == "member" {
				if !haveName || !haveValue {
					return NamedValue{}, fmt.Errorf("xmlrpc: <member> missing <name> or <value>")
				}
				return nv, nil
			}
		}
	}
}

func parseArray(dec *xml.Decoder) (Value, error) {
	var values []Value
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "data":
				// entered implicitly; <value> children follow directly.
			case "value":
				v, err := parseValue(dec)
				if err != nil {
					return Value{}, err
				}
				values = append(values, v)
			default:
				return Value{}, fmt.Errorf("xmlrpc: unexpected <%s> inside <array>", t.Name.Local)
			}
		case xml.EndElement:
			if t.Name.Local == "array" {
				return ArrayValue(values), drainUntilEnd(dec, "value")
			}
		}
	}
}

// readText accumulates CharData until the EndElement matching name,
// tolerating a decoder that splits text content across multiple tokens.
func readText(dec *xml.Decoder, name xml.Name) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == name.Local {
				return sb.String(), nil
			}
			return "", fmt.Errorf("xmlrpc: unexpected </%s>, want </%s>", t.Name.Local, name.Local)
		}
	}
}

// drainUntilEnd consumes tokens up to and including the next EndElement
// named local, ignoring everything else (used after a leaf tag's own
// close to reach the enclosing </value>).
func drainUntilEnd(dec *xml.Decoder, local string) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if end, ok := tok.(xml.EndElement); ok && end.Name.Local == local {
			return nil
		}
	}
}
