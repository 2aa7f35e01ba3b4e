/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package version

import (
	"fmt"
	"strings"
)

// License identifies one of the license texts a Version instance can
// report through GetLicenseName / GetLicenseLegal / GetLicenseBoiler / GetLicenseFull.
type License uint8

const (
	License_MIT License = iota
	License_GNU_GPL_v3
	License_GNU_Affero_GPL_v3
	License_GNU_Lesser_GPL_v3
	License_Mozilla_PL_v2
	License_Apache_v2
	License_Unlicense
	License_Creative_Common_Zero_v1
	License_Creative_Common_Attribution_v4_int
	License_Creative_Common_Attribution_Share_Alike_v4_int
	License_SIL_Open_Font_1_1
)

const licenseSeparator = "********************************************************************************"

var licenseName = map[License]string{
	License_MIT:                    "MIT License",
	License_GNU_GPL_v3:             "GNU GENERAL PUBLIC LICENSE\nVersion 3, 29 June 2007",
	License_GNU_Affero_GPL_v3:      "GNU AFFERO GENERAL PUBLIC LICENSE\nVersion 3, 19 November 2007",
	License_GNU_Lesser_GPL_v3:      "GNU LESSER GENERAL PUBLIC LICENSE\nVersion 3, 29 June 2007",
	License_Mozilla_PL_v2:          "Mozilla Public License Version 2.0",
	License_Apache_v2:              "Apache License\nVersion 2.0, January 2004",
	License_Unlicense:              "Free and unencumbered software",
	License_Creative_Common_Zero_v1: "Creative Commons CC0 1.0 Universal",
	License_Creative_Common_Attribution_v4_int:             "Creative Commons Attribution 4.0 International",
	License_Creative_Common_Attribution_Share_Alike_v4_int: "Creative Commons Attribution-ShareAlike 4.0 International",
	License_SIL_Open_Font_1_1:                              "SIL OPEN FONT LICENSE Version 1.1",
}

const unlicenseText = `This is free and unencumbered software released into the public domain.

Anyone is free to copy, modify, publish, use, compile, sell, or
distribute this software, either in source code form or as a compiled
binary, for any purpose, commercial or non-commercial, and by any
means.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS
OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.

For more information, please refer to <https://unlicense.org>`

var licenseLegal = map[License]string{
	License_MIT: `MIT License

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.`,

	License_Apache_v2: `Apache License
Version 2.0, January 2004
http://www.apache.org/licenses/

TERMS AND CONDITIONS FOR USE, REPRODUCTION, AND DISTRIBUTION

1. Definitions. "License" shall mean the terms and conditions for use,
reproduction, and distribution as defined by Sections 1 through 9 of this
document. "Licensor" shall mean the copyright owner or entity granting the
License.

2. Grant of Copyright License. Subject to the terms and conditions of this
License, each Contributor hereby grants to You a perpetual, worldwide,
non-exclusive, no-charge, royalty-free, irrevocable copyright license to
reproduce, prepare Derivative Works of, publicly display, publicly perform,
sublicense, and distribute the Work and such Derivative Works in Source or
Object form.

3. Grant of Patent License. Subject to the terms and conditions of this
License, each Contributor hereby grants to You a perpetual license to make,
have made, use, offer to sell, sell, import, and otherwise transfer the Work.

THE WORK IS PROVIDED ON AN "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF
ANY KIND, either express or implied.`,

	License_GNU_GPL_v3: `GNU GENERAL PUBLIC LICENSE
Version 3, 29 June 2007

Copyright (C) 2007 Free Software Foundation, Inc. <https://fsf.org/>

The GNU General Public License is a free, copyleft license for software and
other kinds of works. The licenses for most software are designed to take
away your freedom to share and change the works. By contrast, the GNU General
Public License is intended to guarantee your freedom to share and change all
versions of a program--to make sure it remains free software for all its
users.

This program is free software: you can redistribute it and/or modify it
under the terms of the GNU General Public License as published by the Free
Software Foundation, either version 3 of the License, or (at your option)
any later version. This program is distributed in the hope that it will be
useful, but WITHOUT ANY WARRANTY.`,

	License_GNU_Affero_GPL_v3: `GNU AFFERO GENERAL PUBLIC LICENSE
Version 3, 19 November 2007

The GNU Affero General Public License is a free, copyleft license for
software and other kinds of works, specifically designed to ensure
cooperation with the community in the case of network server software.`,

	License_GNU_Lesser_GPL_v3: `GNU LESSER GENERAL PUBLIC LICENSE
Version 3, 29 June 2007

This version of the GNU Lesser General Public License incorporates the terms
and conditions of version 3 of the GNU General Public License, supplemented
by the additional permissions listed below.`,

	License_Mozilla_PL_v2: `Mozilla Public License Version 2.0

This Source Code Form is subject to the terms of the Mozilla Public License,
v. 2.0. If a copy of the MPL was not distributed with this file, You can
obtain one at https://mozilla.org/MPL/2.0/.`,

	License_Unlicense: unlicenseText,

	License_Creative_Common_Zero_v1: `Creative Commons CC0 1.0 Universal

The person who associated a work with this deed has dedicated the work to
the public domain by waiving all of his or her rights to the work worldwide
under copyright law, including all related and neighboring rights, to the
extent allowed by law.`,

	License_Creative_Common_Attribution_v4_int: `Creative Commons Attribution 4.0 International

By exercising the Licensed Rights, You accept and agree to be bound by the
terms and conditions of this Creative Commons Attribution 4.0 International
Public License.`,

	License_Creative_Common_Attribution_Share_Alike_v4_int: `Creative Commons Attribution-ShareAlike 4.0 International

You are free to share and adapt the material for any purpose, even
commercially, as long as you give appropriate credit and distribute your
contributions under the same license as the original (Share Alike).`,

	License_SIL_Open_Font_1_1: `SIL OPEN FONT LICENSE Version 1.1

The goals of the SIL Open Font License are to stimulate worldwide
development of collaborative font projects, to support the font creation
efforts of academic and linguistic communities.`,
}

func nameFor(lic License) string {
	return licenseName[lic]
}

func legalFor(lic License) string {
	return licenseLegal[lic]
}

func boilerFor(lic License, pkg, description, author string, year string) string {
	switch lic {
	case License_Apache_v2:
		return fmt.Sprintf("Apache License\n\nCopyright (c) %s %s\n\nLicensed under the Apache License, Version 2.0.\n", year, author)
	case License_GNU_GPL_v3:
		return fmt.Sprintf("%s - %s\nCopyright (C) %s %s\n\nThis program is free software: you can redistribute it and/or modify\nit under the terms of the GNU General Public License as published by\nthe Free Software Foundation, either version 3 of the License, or\n(at your option) any later version.\n", pkg, description, year, author)
	case License_GNU_Affero_GPL_v3:
		return fmt.Sprintf("%s - %s\nCopyright (C) %s %s\n\nThis program is free software: you can redistribute it and/or modify\nit under the terms of the GNU Affero General Public License as\npublished by the Free Software Foundation, either version 3 of the\nLicense, or (at your option) any later version.\n", pkg, description, year, author)
	case License_GNU_Lesser_GPL_v3:
		return fmt.Sprintf("%s - %s\nCopyright (C) %s %s\n\nThis program is free software: you can redistribute it and/or modify\nit under the terms of the GNU Lesser General Public License as\npublished by the Free Software Foundation, either version 3 of the\nLicense, or (at your option) any later version.\n", pkg, description, year, author)
	case License_Mozilla_PL_v2:
		return fmt.Sprintf("%s\n\nThis Source Code Form is subject to the terms of the Mozilla Public\nLicense, v. 2.0. Copyright (c) %s %s\n", pkg, year, author)
	case License_Unlicense:
		return unlicenseText
	case License_Creative_Common_Zero_v1:
		return fmt.Sprintf("Copyright (c) %s %s\n\nTo the extent possible under law, %s has waived all copyright and\nrelated or neighboring rights to %s (%s).\n\nCreative Commons CC0 1.0 Universal\n", year, author, author, pkg, description)
	case License_Creative_Common_Attribution_v4_int:
		return fmt.Sprintf("Copyright (c) %s %s\n\nThis work is licensed under a Creative Commons Attribution 4.0\nInternational License (CC BY 4.0).\n", year, author)
	case License_Creative_Common_Attribution_Share_Alike_v4_int:
		return fmt.Sprintf("Copyright (c) %s %s\n\nThis work is licensed under a Creative Commons Attribution-Share Alike\n4.0 International License (CC BY-SA 4.0).\n", year, author)
	case License_SIL_Open_Font_1_1:
		return fmt.Sprintf("Copyright (c) %s %s\n\nThis Font Software is licensed under the SIL Open Font License,\nVersion 1.1.\n", year, author)
	default:
		return fmt.Sprintf("MIT License\n\nCopyright (c) %s %s\n", year, author)
	}
}

func joinLicenseParts(parts []string) string {
	if len(parts) == 0 {
		return ""
	}

	res := parts[0]

	for _, p := range parts[1:] {
		res += "\n" + licenseSeparator + "\n" + p + "\n" + licenseSeparator
	}

	return res
}

func joinFull(boiler, legal string) string {
	return boiler + "\n" + licenseSeparator + "\n" + legal
}

func licenseList(first License, extra []License) []License {
	res := make([]License, 0, len(extra)+1)
	res = append(res, first)
	res = append(res, extra...)
	return res
}

func (o *vrs) GetLicenseName() string {
	return strings.TrimSpace(strings.ReplaceAll(nameFor(o.lic), "\n", " "))
}

func (o *vrs) GetLicenseLegal(lic ...License) string {
	all := licenseList(o.lic, lic)
	parts := make([]string, 0, len(all))

	for _, l := range all {
		parts = append(parts, legalFor(l))
	}

	return joinLicenseParts(parts)
}

func (o *vrs) GetLicenseBoiler(lic ...License) string {
	all := licenseList(o.lic, lic)
	parts := make([]string, 0, len(all))
	year := fmt.Sprintf("%d", o.tme.Year())

	for _, l := range all {
		parts = append(parts, boilerFor(l, o.pkg, o.dsc, o.atr, year))
	}

	return joinLicenseParts(parts)
}

func (o *vrs) GetLicenseFull(lic ...License) string {
	return joinFull(o.GetLicenseBoiler(lic...), o.GetLicenseLegal(lic...))
}
