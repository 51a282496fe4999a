// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package javaserial decodes the Java Object Serialization Stream Protocol,
// the wire format produced by java.io.ObjectOutputStream and consumed by
// java.io.ObjectInputStream. It reconstructs a generic tree of class
// descriptors, objects, arrays, enums, strings and block data from an
// opaque byte source, without instantiating any language-native class
// model. Encoding, a class registry, and protocol version 1 externalizable
// contents are out of scope.
package javaserial
