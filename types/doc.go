// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package types defines the information model of this module, which is rather
simple and revolves around [HostAddr] and the resolution [Status] of
endpoints.

[HostAddr] deliberately is a two-form value type: it either carries a literal
IP address or an unresolved domain name, but never both and never neither.
Parsing an endpoint URI never triggers name resolution, so the host component
has to be kept in whatever form it arrived in; the later and clearly separate
resolution step then turns domain names into addresses. Keeping the two forms
in one small immutable value (instead of, say, stringly-typed hosts all the
way down) lets the endpoint and resolution code branch on the form exactly
once and in one place.

[Status] describes the lifecycle of an endpoint address while it wanders
through a concurrent bulk resolution: pending, resolving, and finally either
resolved or failed. Values only ever move forward through this lifecycle.
*/
package types
