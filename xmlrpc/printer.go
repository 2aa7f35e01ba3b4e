package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"strconv"
)

// Encode renders a method call as a canonical XML-RPC document.
func (r *Request) Encode() []byte {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\"?>")
	b.WriteString("<methodCall><methodName>")
	xml.EscapeText(&b, []byte(r.MethodName))
	b.WriteString("</methodName>")
	encodeParams(&b, r.Params)
	b.WriteString("</methodCall>")
	return b.Bytes()
}

// Encode renders a method response — its Params or its Fault, whichever
// is set — as a canonical XML-RPC document.
func (r *Response) Encode() []byte {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\"?>")
	b.WriteString("<methodResponse>")
	if r.Fault != nil {
		b.WriteString("<fault>")
		encodeValue(&b, StructValue([]NamedValue{
			{Name: "faultCode", Value: Int32Value(r.Fault.Code)},
			{Name: "faultString", Value: StringValue(r.Fault.String)},
		}))
		b.WriteString("</fault>")
	} else {
		encodeParams(&b, r.Params)
	}
	b.WriteString("</methodResponse>")
	return b.Bytes()
}

func encodeParams(b *bytes.Buffer, params []Value) {
	b.WriteString("<params>")
	for _, p := range params {
		b.WriteString("<param>")
		encodeValue(b, p)
		b.WriteString("</param>")
	}
	b.WriteString("</params>")
}

func encodeValue(b *bytes.Buffer, v Value) {
	b.WriteString("<value>")
	switch v.Kind {
	case Int32:
		b.WriteString("<i4>")
		b.WriteString(strconv.FormatInt(int64(v.Int32Val), 10))
		b.WriteString("</i4>")
	case Boolean:
		b.WriteString("<boolean>")
		if v.BoolVal {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
		b.WriteString("</boolean>")
	case Double:
		b.WriteString("<double>")
		b.WriteString(strconv.FormatFloat(v.DoubleVal, 'g', -1, 64))
		b.WriteString("</double>")
	case String:
		b.WriteString("<string>")
		xml.EscapeText(b, []byte(v.StringVal))
		b.WriteString("</string>")
	case Date:
		b.WriteString("<dateTime.iso8601>")
		b.WriteString(v.DateVal.UTC().Format(dateLayout))
		b.WriteString("</dateTime.iso8601>")
	case Binary:
		b.WriteString("<base64>")
		b.WriteString(base64.StdEncoding.EncodeToString(v.BinaryVal))
		b.WriteString("</base64>")
	case Struct:
		b.WriteString("<struct>")
		for _, m := range v.StructVal {
			b.WriteString("<member><name>")
			xml.EscapeText(b, []byte(m.Name))
			b.WriteString("</name>")
			encodeValue(b, m.Value)
			b.WriteString("</member>")
		}
		b.WriteString("</struct>")
	case Array:
		b.WriteString("<array><data>")
		for _, e := range v.ArrayVal {
			encodeValue(b, e)
		}
		b.WriteString("</data></array>")
	}
	b.WriteString("</value>")
}
