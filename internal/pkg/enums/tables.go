package enums

var statusNames = map[uint]string{
	0x00000000: "CKR_OK",
	0x00000001: "CKR_CANCEL",
	0x00000002: "CKR_HOST_MEMORY",
	0x00000003: "CKR_SLOT_ID_INVALID",
	0x00000005: "CKR_GENERAL_ERROR",
	0x00000006: "CKR_FUNCTION_FAILED",
	0x00000007: "CKR_ARGUMENTS_BAD",
	0x00000008: "CKR_NO_EVENT",
	0x00000009: "CKR_NEED_TO_CREATE_THREADS",
	0x0000000A: "CKR_CANT_LOCK",
	0x00000010: "CKR_ATTRIBUTE_READ_ONLY",
	0x00000011: "CKR_ATTRIBUTE_SENSITIVE",
	0x00000012: "CKR_ATTRIBUTE_TYPE_INVALID",
	0x00000013: "CKR_ATTRIBUTE_VALUE_INVALID",
	0x0000001B: "CKR_ACTION_PROHIBITED",
	0x00000020: "CKR_DATA_INVALID",
	0x00000021: "CKR_DATA_LEN_RANGE",
	0x00000030: "CKR_DEVICE_ERROR",
	0x00000031: "CKR_DEVICE_MEMORY",
	0x00000032: "CKR_DEVICE_REMOVED",
	0x00000040: "CKR_ENCRYPTED_DATA_INVALID",
	0x00000041: "CKR_ENCRYPTED_DATA_LEN_RANGE",
	0x00000050: "CKR_FUNCTION_CANCELED",
	0x00000051: "CKR_FUNCTION_NOT_PARALLEL",
	0x00000054: "CKR_FUNCTION_NOT_SUPPORTED",
	0x00000060: "CKR_KEY_HANDLE_INVALID",
	0x00000062: "CKR_KEY_SIZE_RANGE",
	0x00000063: "CKR_KEY_TYPE_INCONSISTENT",
	0x00000064: "CKR_KEY_NOT_NEEDED",
	0x00000065: "CKR_KEY_CHANGED",
	0x00000066: "CKR_KEY_NEEDED",
	0x00000067: "CKR_KEY_INDIGESTIBLE",
	0x00000068: "CKR_KEY_FUNCTION_NOT_PERMITTED",
	0x00000069: "CKR_KEY_NOT_WRAPPABLE",
	0x0000006A: "CKR_KEY_UNEXTRACTABLE",
	0x00000070: "CKR_MECHANISM_INVALID",
	0x00000071: "CKR_MECHANISM_PARAM_INVALID",
	0x00000082: "CKR_OBJECT_HANDLE_INVALID",
	0x00000090: "CKR_OPERATION_ACTIVE",
	0x00000091: "CKR_OPERATION_NOT_INITIALIZED",
	0x000000A0: "CKR_PIN_INCORRECT",
	0x000000A1: "CKR_PIN_INVALID",
	0x000000A2: "CKR_PIN_LEN_RANGE",
	0x000000A3: "CKR_PIN_EXPIRED",
	0x000000A4: "CKR_PIN_LOCKED",
	0x000000B0: "CKR_SESSION_CLOSED",
	0x000000B1: "CKR_SESSION_COUNT",
	0x000000B3: "CKR_SESSION_HANDLE_INVALID",
	0x000000B4: "CKR_SESSION_PARALLEL_NOT_SUPPORTED",
	0x000000B5: "CKR_SESSION_READ_ONLY",
	0x000000B6: "CKR_SESSION_EXISTS",
	0x000000B7: "CKR_SESSION_READ_ONLY_EXISTS",
	0x000000B8: "CKR_SESSION_READ_WRITE_SO_EXISTS",
	0x000000C0: "CKR_SIGNATURE_INVALID",
	0x000000C1: "CKR_SIGNATURE_LEN_RANGE",
	0x000000D0: "CKR_TEMPLATE_INCOMPLETE",
	0x000000D1: "CKR_TEMPLATE_INCONSISTENT",
	0x000000E0: "CKR_TOKEN_NOT_PRESENT",
	0x000000E1: "CKR_TOKEN_NOT_RECOGNIZED",
	0x000000E2: "CKR_TOKEN_WRITE_PROTECTED",
	0x000000F0: "CKR_UNWRAPPING_KEY_HANDLE_INVALID",
	0x000000F1: "CKR_UNWRAPPING_KEY_SIZE_RANGE",
	0x000000F2: "CKR_UNWRAPPING_KEY_TYPE_INCONSISTENT",
	0x00000100: "CKR_USER_ALREADY_LOGGED_IN",
	0x00000101: "CKR_USER_NOT_LOGGED_IN",
	0x00000102: "CKR_USER_PIN_NOT_INITIALIZED",
	0x00000103: "CKR_USER_TYPE_INVALID",
	0x00000104: "CKR_USER_ANOTHER_ALREADY_LOGGED_IN",
	0x00000105: "CKR_USER_TOO_MANY_TYPES",
	0x00000110: "CKR_WRAPPED_KEY_INVALID",
	0x00000112: "CKR_WRAPPED_KEY_LEN_RANGE",
	0x00000113: "CKR_WRAPPING_KEY_HANDLE_INVALID",
	0x00000114: "CKR_WRAPPING_KEY_SIZE_RANGE",
	0x00000115: "CKR_WRAPPING_KEY_TYPE_INCONSISTENT",
	0x00000120: "CKR_RANDOM_SEED_NOT_SUPPORTED",
	0x00000121: "CKR_RANDOM_NO_RNG",
	0x00000130: "CKR_DOMAIN_PARAMS_INVALID",
	0x00000150: "CKR_BUFFER_TOO_SMALL",
	0x00000160: "CKR_SAVED_STATE_INVALID",
	0x00000170: "CKR_INFORMATION_SENSITIVE",
	0x00000180: "CKR_STATE_UNSAVEABLE",
	0x00000190: "CKR_CRYPTOKI_NOT_INITIALIZED",
	0x00000191: "CKR_CRYPTOKI_ALREADY_INITIALIZED",
	0x000001A0: "CKR_MUTEX_BAD",
	0x000001A1: "CKR_MUTEX_NOT_LOCKED",
	0x000001B0: "CKR_NEW_PIN_MODE",
	0x000001B1: "CKR_NEXT_OTP",
	0x00000200: "CKR_FUNCTION_REJECTED",
	0x80000000: "CKR_VENDOR_DEFINED",
}

var mechanismNames = map[uint]string{
	0x00000000: "CKM_RSA_PKCS_KEY_PAIR_GEN",
	0x00000001: "CKM_RSA_PKCS",
	0x00000002: "CKM_RSA_9796",
	0x00000003: "CKM_RSA_X_509",
	0x00000004: "CKM_MD2_RSA_PKCS",
	0x00000005: "CKM_MD5_RSA_PKCS",
	0x00000006: "CKM_SHA1_RSA_PKCS",
	0x00000007: "CKM_RIPEMD128_RSA_PKCS",
	0x00000008: "CKM_RIPEMD160_RSA_PKCS",
	0x00000009: "CKM_RSA_PKCS_OAEP",
	0x0000000A: "CKM_RSA_X9_31_KEY_PAIR_GEN",
	0x0000000B: "CKM_RSA_X9_31",
	0x0000000C: "CKM_SHA1_RSA_X9_31",
	0x0000000D: "CKM_RSA_PKCS_PSS",
	0x0000000E: "CKM_SHA1_RSA_PKCS_PSS",
	0x00000010: "CKM_DSA_KEY_PAIR_GEN",
	0x00000011: "CKM_DSA",
	0x00000012: "CKM_DSA_SHA1",
	0x00000020: "CKM_DH_PKCS_KEY_PAIR_GEN",
	0x00000021: "CKM_DH_PKCS_DERIVE",
	0x00000030: "CKM_X9_42_DH_KEY_PAIR_GEN",
	0x00000031: "CKM_X9_42_DH_DERIVE",
	0x00000032: "CKM_X9_42_DH_HYBRID_DERIVE",
	0x00000033: "CKM_X9_42_MQV_DERIVE",
	0x00000040: "CKM_SHA256_RSA_PKCS",
	0x00000041: "CKM_SHA384_RSA_PKCS",
	0x00000042: "CKM_SHA512_RSA_PKCS",
	0x00000043: "CKM_SHA256_RSA_PKCS_PSS",
	0x00000044: "CKM_SHA384_RSA_PKCS_PSS",
	0x00000045: "CKM_SHA512_RSA_PKCS_PSS",
	0x00000046: "CKM_SHA224_RSA_PKCS",
	0x00000047: "CKM_SHA224_RSA_PKCS_PSS",
	0x00000100: "CKM_RC2_KEY_GEN",
	0x00000101: "CKM_RC2_ECB",
	0x00000102: "CKM_RC2_CBC",
	0x00000103: "CKM_RC2_MAC",
	0x00000104: "CKM_RC2_MAC_GENERAL",
	0x00000105: "CKM_RC2_CBC_PAD",
	0x00000110: "CKM_RC4_KEY_GEN",
	0x00000111: "CKM_RC4",
	0x00000120: "CKM_DES_KEY_GEN",
	0x00000121: "CKM_DES_ECB",
	0x00000122: "CKM_DES_CBC",
	0x00000123: "CKM_DES_MAC",
	0x00000124: "CKM_DES_MAC_GENERAL",
	0x00000125: "CKM_DES_CBC_PAD",
	0x00000130: "CKM_DES2_KEY_GEN",
	0x00000131: "CKM_DES3_KEY_GEN",
	0x00000132: "CKM_DES3_ECB",
	0x00000133: "CKM_DES3_CBC",
	0x00000134: "CKM_DES3_MAC",
	0x00000135: "CKM_DES3_MAC_GENERAL",
	0x00000136: "CKM_DES3_CBC_PAD",
	0x00000140: "CKM_CDMF_KEY_GEN",
	0x00000141: "CKM_CDMF_ECB",
	0x00000142: "CKM_CDMF_CBC",
	0x00000143: "CKM_CDMF_MAC",
	0x00000144: "CKM_CDMF_MAC_GENERAL",
	0x00000145: "CKM_CDMF_CBC_PAD",
	0x00000200: "CKM_MD2",
	0x00000201: "CKM_MD2_HMAC",
	0x00000202: "CKM_MD2_HMAC_GENERAL",
	0x00000210: "CKM_MD5",
	0x00000211: "CKM_MD5_HMAC",
	0x00000212: "CKM_MD5_HMAC_GENERAL",
	0x00000220: "CKM_SHA_1",
	0x00000221: "CKM_SHA_1_HMAC",
	0x00000222: "CKM_SHA_1_HMAC_GENERAL",
	0x00000230: "CKM_RIPEMD128",
	0x00000231: "CKM_RIPEMD128_HMAC",
	0x00000232: "CKM_RIPEMD128_HMAC_GENERAL",
	0x00000240: "CKM_RIPEMD160",
	0x00000241: "CKM_RIPEMD160_HMAC",
	0x00000242: "CKM_RIPEMD160_HMAC_GENERAL",
	0x00000250: "CKM_SHA256",
	0x00000251: "CKM_SHA256_HMAC",
	0x00000252: "CKM_SHA256_HMAC_GENERAL",
	0x00000255: "CKM_SHA224",
	0x00000256: "CKM_SHA224_HMAC",
	0x00000257: "CKM_SHA224_HMAC_GENERAL",
	0x00000260: "CKM_SHA384",
	0x00000261: "CKM_SHA384_HMAC",
	0x00000262: "CKM_SHA384_HMAC_GENERAL",
	0x00000270: "CKM_SHA512",
	0x00000271: "CKM_SHA512_HMAC",
	0x00000272: "CKM_SHA512_HMAC_GENERAL",
	0x00000350: "CKM_GENERIC_SECRET_KEY_GEN",
	0x00000360: "CKM_CONCATENATE_BASE_AND_KEY",
	0x00000362: "CKM_CONCATENATE_BASE_AND_DATA",
	0x00000363: "CKM_CONCATENATE_DATA_AND_BASE",
	0x00000364: "CKM_XOR_BASE_AND_DATA",
	0x00000365: "CKM_EXTRACT_KEY_FROM_KEY",
	0x00000370: "CKM_SSL3_PRE_MASTER_KEY_GEN",
	0x00000371: "CKM_SSL3_MASTER_KEY_DERIVE",
	0x00000372: "CKM_SSL3_KEY_AND_MAC_DERIVE",
	0x00000373: "CKM_SSL3_MASTER_KEY_DERIVE_DH",
	0x00000374: "CKM_TLS_PRE_MASTER_KEY_GEN",
	0x00000375: "CKM_TLS_MASTER_KEY_DERIVE",
	0x00000376: "CKM_TLS_KEY_AND_MAC_DERIVE",
	0x00000377: "CKM_TLS_MASTER_KEY_DERIVE_DH",
	0x00000378: "CKM_TLS_PRF",
	0x00000380: "CKM_SSL3_MD5_MAC",
	0x00000381: "CKM_SSL3_SHA1_MAC",
	0x00000390: "CKM_MD5_KEY_DERIVATION",
	0x00000391: "CKM_MD2_KEY_DERIVATION",
	0x00000392: "CKM_SHA1_KEY_DERIVATION",
	0x00000393: "CKM_SHA256_KEY_DERIVATION",
	0x00000394: "CKM_SHA384_KEY_DERIVATION",
	0x00000395: "CKM_SHA512_KEY_DERIVATION",
	0x00000396: "CKM_SHA224_KEY_DERIVATION",
	0x000003A0: "CKM_PBE_MD2_DES_CBC",
	0x000003A1: "CKM_PBE_MD5_DES_CBC",
	0x000003B0: "CKM_PKCS5_PBKD2",
	0x000003C0: "CKM_PBA_SHA1_WITH_SHA1_HMAC",
	0x00000400: "CKM_KEY_WRAP_LYNKS",
	0x00000401: "CKM_KEY_WRAP_SET_OAEP",
	0x00001040: "CKM_EC_KEY_PAIR_GEN",
	0x00001041: "CKM_ECDSA",
	0x00001042: "CKM_ECDSA_SHA1",
	0x00001043: "CKM_ECDSA_SHA224",
	0x00001044: "CKM_ECDSA_SHA256",
	0x00001045: "CKM_ECDSA_SHA384",
	0x00001046: "CKM_ECDSA_SHA512",
	0x00001050: "CKM_ECDH1_DERIVE",
	0x00001051: "CKM_ECDH1_COFACTOR_DERIVE",
	0x00001052: "CKM_ECMQV_DERIVE",
	0x00001080: "CKM_AES_KEY_GEN",
	0x00001081: "CKM_AES_ECB",
	0x00001082: "CKM_AES_CBC",
	0x00001083: "CKM_AES_MAC",
	0x00001084: "CKM_AES_MAC_GENERAL",
	0x00001085: "CKM_AES_CBC_PAD",
	0x00001086: "CKM_AES_CTR",
	0x00001087: "CKM_AES_GCM",
	0x00001088: "CKM_AES_CCM",
	0x00001089: "CKM_AES_CTS",
	0x0000108A: "CKM_AES_CMAC",
	0x0000108B: "CKM_AES_CMAC_GENERAL",
	0x00001100: "CKM_DES_ECB_ENCRYPT_DATA",
	0x00001101: "CKM_DES_CBC_ENCRYPT_DATA",
	0x00001102: "CKM_DES3_ECB_ENCRYPT_DATA",
	0x00001103: "CKM_DES3_CBC_ENCRYPT_DATA",
	0x00001104: "CKM_AES_ECB_ENCRYPT_DATA",
	0x00001105: "CKM_AES_CBC_ENCRYPT_DATA",
	0x00002000: "CKM_DSA_PARAMETER_GEN",
	0x00002001: "CKM_DH_PKCS_PARAMETER_GEN",
	0x00002002: "CKM_X9_42_DH_PARAMETER_GEN",
	0x00002109: "CKM_AES_KEY_WRAP",
	0x0000210A: "CKM_AES_KEY_WRAP_PAD",
	0x80000000: "CKM_VENDOR_DEFINED",
}

var userTypeNames = map[uint]string{
	0x00000000: "CKU_SO",
	0x00000001: "CKU_USER",
	0x00000002: "CKU_CONTEXT_SPECIFIC",
}

var attributeNames = map[uint]string{
	0x00000000: "CKA_CLASS",
	0x00000001: "CKA_TOKEN",
	0x00000002: "CKA_PRIVATE",
	0x00000003: "CKA_LABEL",
	0x00000010: "CKA_APPLICATION",
	0x00000011: "CKA_VALUE",
	0x00000012: "CKA_OBJECT_ID",
	0x00000080: "CKA_CERTIFICATE_TYPE",
	0x00000081: "CKA_ISSUER",
	0x00000082: "CKA_SERIAL_NUMBER",
	0x00000083: "CKA_AC_ISSUER",
	0x00000084: "CKA_OWNER",
	0x00000085: "CKA_ATTR_TYPES",
	0x00000086: "CKA_TRUSTED",
	0x00000087: "CKA_CERTIFICATE_CATEGORY",
	0x00000088: "CKA_JAVA_MIDP_SECURITY_DOMAIN",
	0x00000089: "CKA_URL",
	0x0000008A: "CKA_HASH_OF_SUBJECT_PUBLIC_KEY",
	0x0000008B: "CKA_HASH_OF_ISSUER_PUBLIC_KEY",
	0x00000090: "CKA_CHECK_VALUE",
	0x00000100: "CKA_KEY_TYPE",
	0x00000101: "CKA_SUBJECT",
	0x00000102: "CKA_ID",
	0x00000103: "CKA_SENSITIVE",
	0x00000104: "CKA_ENCRYPT",
	0x00000105: "CKA_DECRYPT",
	0x00000106: "CKA_WRAP",
	0x00000107: "CKA_UNWRAP",
	0x00000108: "CKA_SIGN",
	0x00000109: "CKA_SIGN_RECOVER",
	0x0000010A: "CKA_VERIFY",
	0x0000010B: "CKA_VERIFY_RECOVER",
	0x0000010C: "CKA_DERIVE",
	0x00000110: "CKA_START_DATE",
	0x00000111: "CKA_END_DATE",
	0x00000120: "CKA_MODULUS",
	0x00000121: "CKA_MODULUS_BITS",
	0x00000122: "CKA_PUBLIC_EXPONENT",
	0x00000123: "CKA_PRIVATE_EXPONENT",
	0x00000124: "CKA_PRIME_1",
	0x00000125: "CKA_PRIME_2",
	0x00000126: "CKA_EXPONENT_1",
	0x00000127: "CKA_EXPONENT_2",
	0x00000128: "CKA_COEFFICIENT",
	0x00000130: "CKA_PRIME",
	0x00000131: "CKA_SUBPRIME",
	0x00000132: "CKA_BASE",
	0x00000133: "CKA_PRIME_BITS",
	0x00000134: "CKA_SUBPRIME_BITS",
	0x00000160: "CKA_VALUE_BITS",
	0x00000161: "CKA_VALUE_LEN",
	0x00000162: "CKA_EXTRACTABLE",
	0x00000163: "CKA_LOCAL",
	0x00000164: "CKA_NEVER_EXTRACTABLE",
	0x00000165: "CKA_ALWAYS_SENSITIVE",
	0x00000166: "CKA_KEY_GEN_MECHANISM",
	0x00000170: "CKA_MODIFIABLE",
	0x00000180: "CKA_EC_PARAMS",
	0x00000181: "CKA_EC_POINT",
	0x00000200: "CKA_SECONDARY_AUTH",
	0x00000201: "CKA_AUTH_PIN_FLAGS",
	0x00000202: "CKA_ALWAYS_AUTHENTICATE",
	0x00000210: "CKA_WRAP_WITH_TRUSTED",
	0x00000300: "CKA_HW_FEATURE_TYPE",
	0x00000301: "CKA_RESET_ON_INIT",
	0x00000302: "CKA_HAS_RESET",
	0x40000211: "CKA_WRAP_TEMPLATE",
	0x40000212: "CKA_UNWRAP_TEMPLATE",
	0x40000600: "CKA_ALLOWED_MECHANISMS",
	0x80000000: "CKA_VENDOR_DEFINED",
}

var objectClassNames = map[uint]string{
	0x00000000: "CKO_DATA",
	0x00000001: "CKO_CERTIFICATE",
	0x00000002: "CKO_PUBLIC_KEY",
	0x00000003: "CKO_PRIVATE_KEY",
	0x00000004: "CKO_SECRET_KEY",
	0x00000005: "CKO_HW_FEATURE",
	0x00000006: "CKO_DOMAIN_PARAMETERS",
	0x00000007: "CKO_MECHANISM",
	0x80000000: "CKO_VENDOR_DEFINED",
}

var keyTypeNames = map[uint]string{
	0x00000000: "CKK_RSA",
	0x00000001: "CKK_DSA",
	0x00000002: "CKK_DH",
	0x00000003: "CKK_EC",
	0x00000004: "CKK_X9_42_DH",
	0x00000005: "CKK_KEA",
	0x00000010: "CKK_GENERIC_SECRET",
	0x00000011: "CKK_RC2",
	0x00000012: "CKK_RC4",
	0x00000013: "CKK_DES",
	0x00000014: "CKK_DES2",
	0x00000015: "CKK_DES3",
	0x00000016: "CKK_CAST",
	0x00000017: "CKK_CAST3",
	0x00000018: "CKK_CAST128",
	0x00000019: "CKK_RC5",
	0x0000001A: "CKK_IDEA",
	0x0000001B: "CKK_SKIPJACK",
	0x0000001C: "CKK_BATON",
	0x0000001D: "CKK_JUNIPER",
	0x0000001E: "CKK_CDMF",
	0x0000001F: "CKK_AES",
	0x00000020: "CKK_BLOWFISH",
	0x00000021: "CKK_TWOFISH",
	0x80000000: "CKK_VENDOR_DEFINED",
}

var sessionStateNames = map[uint]string{
	0x00000000: "CKS_RO_PUBLIC_SESSION",
	0x00000001: "CKS_RO_USER_FUNCTIONS",
	0x00000002: "CKS_RW_PUBLIC_SESSION",
	0x00000003: "CKS_RW_USER_FUNCTIONS",
	0x00000004: "CKS_RW_SO_FUNCTIONS",
}

var certificateTypeNames = map[uint]string{
	0x00000000: "CKC_X_509",
	0x00000001: "CKC_X_509_ATTR_CERT",
	0x00000002: "CKC_WTLS",
	0x80000000: "CKC_VENDOR_DEFINED",
}
