/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package protocol_test

import (
	"encoding/json"
	"reflect"

	. "github.com/nabbar/gsk/network/protocol"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Protocol Marshaling", func() {
	It("marshals known protocols to their quoted name", func() {
		data, err := NetworkTCP.MarshalJSON()
		Expect(err).To(BeNil())
		Expect(string(data)).To(Equal(`"tcp"`))
	})

	It("marshals NetworkEmpty to an empty JSON string", func() {
		data, err := NetworkEmpty.MarshalJSON()
		Expect(err).To(BeNil())
		Expect(string(data)).To(Equal(`""`))
	})

	It("round-trips through encoding/json in a struct", func() {
		type wrapper struct {
			Protocol NetworkProtocol `json:"protocol"`
		}

		data, err := json.Marshal(wrapper{Protocol: NetworkUDP})
		Expect(err).To(BeNil())
		Expect(string(data)).To(Equal(`{"protocol":"udp"}`))

		var out wrapper
		Expect(json.Unmarshal(data, &out)).To(Succeed())
		Expect(out.Protocol).To(Equal(NetworkUDP))
	})

	It("unmarshals unknown names to NetworkEmpty without error", func() {
		var p NetworkProtocol
		Expect(p.UnmarshalJSON([]byte(`"invalid"`))).To(Succeed())
		Expect(p).To(Equal(NetworkEmpty))
	})

	Describe("ViperDecoderHook", func() {
		var protocolType reflect.Type

		BeforeEach(func() {
			var p NetworkProtocol
			protocolType = reflect.TypeOf(p)
		})

		It("decodes a matching string source into a NetworkProtocol", func() {
			hook := ViperDecoderHook()
			result, err := hook(reflect.TypeOf(""), protocolType, "tcp")
			Expect(err).To(BeNil())
			Expect(result).To(Equal(NetworkTCP))
		})

		It("passes through non-string sources untouched", func() {
			hook := ViperDecoderHook()
			result, err := hook(reflect.TypeOf(0), protocolType, 42)
			Expect(err).To(BeNil())
			Expect(result).To(Equal(42))
		})

		It("passes through when the target type isn't NetworkProtocol", func() {
			hook := ViperDecoderHook()
			result, err := hook(reflect.TypeOf(""), reflect.TypeOf(""), "tcp")
			Expect(err).To(BeNil())
			Expect(result).To(Equal("tcp"))
		})
	})
})
